package services

import "errors"

// kindError is a specific error that also matches its category with errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// Категории ошибок. Конкретные ошибки ниже оборачивают одну из них.
var (
	ErrNotFound                 = errors.New("requested resource not found")
	ErrConflict                 = errors.New("resource conflict")
	ErrValidationFailed         = errors.New("validation failed")
	ErrInvalidConfiguration     = errors.New("invalid configuration")
	ErrInsufficientParticipants = errors.New("at least 2 eligible participants are required")
	ErrHasHistory               = errors.New("entity has recorded match history")
	ErrAuthenticationFailed     = errors.New("authentication failed")
)

// Не найдено
var (
	ErrTeamNotFound         = newKindError(ErrNotFound, "team not found")
	ErrPlayerNotFound       = newKindError(ErrNotFound, "player not found")
	ErrCompetitionNotFound  = newKindError(ErrNotFound, "competition not found")
	ErrFixtureNotFound      = newKindError(ErrNotFound, "fixture not found")
	ErrParticipantNotFound  = newKindError(ErrNotFound, "participant is not entered in this competition")
	ErrConfirmationNotFound = newKindError(ErrNotFound, "confirmation token not found or already used")
)

// Конфликты уникальности
var (
	ErrDuplicateName           = newKindError(ErrConflict, "name is already in use")
	ErrTeamNameConflict        = newKindError(ErrDuplicateName, "team name is already in use")
	ErrCompetitionNameConflict = newKindError(ErrDuplicateName, "competition name is already in use")
	ErrAlreadyRegistered       = newKindError(ErrConflict, "player is already registered")
	ErrAlreadyEntered          = newKindError(ErrConflict, "participant is already entered in this competition")
	ErrFixturesExist           = newKindError(ErrConflict, "fixtures already exist for this competition; regeneration must be confirmed")
)

// Валидация и конфигурация
var (
	ErrNameRequired           = newKindError(ErrValidationFailed, "name is required")
	ErrInvalidID              = newKindError(ErrValidationFailed, "identifier must be positive")
	ErrSameWinnerLoser        = newKindError(ErrValidationFailed, "winner and loser must be different players")
	ErrSamePlayer             = newKindError(ErrValidationFailed, "head-to-head needs two different players")
	ErrPlayerHasNoTeam        = newKindError(ErrValidationFailed, "player is not on a team")
	ErrParticipantKindInvalid = newKindError(ErrValidationFailed, "participant kind does not match the competition")
	ErrInvalidCompetitionKind = newKindError(ErrInvalidConfiguration, "competition kind must be 'league' or 'cup'")
	ErrInvalidChannelRole     = newKindError(ErrInvalidConfiguration, "channel role must be 'fixtures' or 'results'")
)

// Подтверждение перегенерации
var (
	ErrConfirmationExpired   = errors.New("confirmation expired; regeneration cancelled")
	ErrRegenerationCancelled = errors.New("regeneration cancelled")
)

// Аутентификация
var (
	ErrInvalidCredentials = newKindError(ErrAuthenticationFailed, "invalid admin password")
	ErrAdminLoginDisabled = newKindError(ErrAuthenticationFailed, "admin login is not configured")
)
