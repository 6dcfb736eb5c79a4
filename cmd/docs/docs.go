// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/payhub_backend/main.go -o cmd/docs
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
    "paths": {
        "/account": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get account balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountBalanceResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"description": "Login Credentials", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register new user",
                "parameters": [{"description": "User Registration Info", "name": "register", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [{"type": "integer", "description": "Maximum number of transactions", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Post a transaction",
                "parameters": [{"description": "Transaction intent", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PostTransactionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AccountBalanceResponse": {
            "type": "object",
            "properties": {"accountID": {"type": "string"}, "balance": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "recaptchaToken": {"type": "string"}, "username": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {"expiresAt": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}
        },
        "dto.PostTransactionRequest": {
            "type": "object",
            "required": ["amount", "category", "description", "type"],
            "properties": {
                "amount": {"type": "string"}, "cardId": {"type": "string"}, "category": {"type": "string"},
                "description": {"type": "string"}, "paymentMethod": {"type": "string"}, "recipientName": {"type": "string"},
                "status": {"type": "string"}, "type": {"type": "string"}
            }
        },
        "dto.RegisterUserRequest": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "password", "username"],
            "properties": {
                "address": {"type": "string"}, "email": {"type": "string"}, "firstName": {"type": "string"},
                "lastName": {"type": "string"}, "password": {"type": "string"}, "phone": {"type": "string"}, "username": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"}, "cardId": {"type": "string"}, "category": {"type": "string"},
                "date": {"type": "string"}, "description": {"type": "string"}, "id": {"type": "integer"},
                "paymentMethod": {"type": "string"}, "recipientName": {"type": "string"}, "status": {"type": "string"},
                "type": {"type": "string"}, "userId": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"}, "email": {"type": "string"}, "firstName": {"type": "string"},
                "lastName": {"type": "string"}, "phone": {"type": "string"}, "userID": {"type": "string"}, "username": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PayHub API",
	Description:      "Payments demo backend: ledger, cards, contacts and QR codes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
