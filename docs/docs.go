// Package docs registers the OpenAPI description served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Получить токен администратора", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/teams": {
            "get": {"tags": ["teams"], "summary": "Список команд", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["teams"], "summary": "Создать команду", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/teams/{teamID}": {
            "get": {"tags": ["teams"], "summary": "Получить команду с игроками", "parameters": [{"type": "integer", "name": "teamID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["teams"], "summary": "Удалить команду", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "teamID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/players": {
            "get": {"tags": ["players"], "summary": "Список игроков", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["players"], "summary": "Зарегистрировать игрока", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/players/assign": {
            "post": {"tags": ["players"], "summary": "Назначить игроков в команду", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/players/{playerID}": {
            "put": {"tags": ["players"], "summary": "Переименовать игрока", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["players"], "summary": "Удалить игрока", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Has match history"}}}
        },
        "/players/{playerID}/status": {
            "get": {"tags": ["players"], "summary": "Гандикап и серии игрока", "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/players/{playerID}/h2h/{opponentID}": {
            "get": {"tags": ["results"], "summary": "Личные встречи двух игроков", "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}, {"type": "integer", "name": "opponentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/competitions": {
            "get": {"tags": ["competitions"], "summary": "Список соревнований", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["competitions"], "summary": "Создать соревнование", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/competitions/{competitionID}": {
            "get": {"tags": ["competitions"], "summary": "Соревнование с участниками, расписанием и последними результатами", "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["competitions"], "summary": "Удалить соревнование", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Has match history"}}}
        },
        "/competitions/{competitionID}/channels/{role}": {
            "put": {"tags": ["competitions"], "summary": "Назначить канал", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}, {"type": "string", "name": "role", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/competitions/{competitionID}/participants": {
            "get": {"tags": ["competitions"], "summary": "Участники", "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["competitions"], "summary": "Записать участников", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/competitions/{competitionID}/participants/{participantType}/{participantID}": {
            "delete": {"tags": ["competitions"], "summary": "Снять участника", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}, {"type": "string", "name": "participantType", "in": "path", "required": true}, {"type": "integer", "name": "participantID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/competitions/{competitionID}/fixtures": {
            "get": {"tags": ["fixtures"], "summary": "Расписание соревнования", "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["fixtures"], "summary": "Сгенерировать расписание", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"201": {"description": "Generated"}, "202": {"description": "Confirmation required"}, "422": {"description": "Not enough participants"}}}
        },
        "/competitions/{competitionID}/results": {
            "post": {"tags": ["results"], "summary": "Сообщить результат", "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "429": {"description": "Too Many Requests"}}}
        },
        "/competitions/{competitionID}/players/{playerID}/next": {
            "get": {"tags": ["results"], "summary": "Следующий матч игрока", "parameters": [{"type": "integer", "name": "competitionID", "in": "path", "required": true}, {"type": "integer", "name": "playerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/confirmations/{token}": {
            "post": {"tags": ["fixtures"], "summary": "Подтвердить или отменить перегенерацию", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"201": {"description": "Regenerated"}, "200": {"description": "Cancelled"}, "404": {"description": "Unknown token"}, "410": {"description": "Expired"}}}
        },
        "/fixtures/{fixtureID}/complete": {
            "post": {"tags": ["fixtures"], "summary": "Отметить матч сыгранным", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "fixtureID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "League System API",
	Description:      "Leagues, cups, fixtures, results and handicaps.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
