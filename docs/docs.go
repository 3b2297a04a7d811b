// Package docs registra la especificación OpenAPI de la API con swag.
// Se sirve en /swagger/doc.json (ver router).
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
        "/animals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animal"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Crear animal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animalInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animal"}},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/validationErrors"}}
                }
            }
        },
        "/animals/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Obtener un animal",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animal"}},
                    "404": {"description": "Cannot GET /animals/{id}"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Reemplazar animal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animalInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animal"}},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Cannot PUT /animals/{id}"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/validationErrors"}}
                }
            },
            "delete": {
                "tags": ["animals"],
                "summary": "Borrar animal",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Cannot DELETE /animals/{id}"}
                }
            }
        },
        "/animals/{id}/photo": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Subir foto del animal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "photo", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/photo"}},
                    "400": {"description": "No photo file uploaded."},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Cannot POST /animals/{id}/photo"},
                    "500": {"description": "Error: The uploaded file must be a JPEG or a PNG image."}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/login"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Cerrar sesión",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Identidad actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/me"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "animal": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "breed": {"type": "string"},
                "weight": {"type": "number"},
                "name": {"type": "string", "x-nullable": true},
                "photoFilename": {"type": "string", "x-nullable": true},
                "createdAt": {"type": "string", "format": "date-time"},
                "createdBy": {"type": "string", "x-nullable": true},
                "updatedAt": {"type": "string", "format": "date-time"},
                "updatedBy": {"type": "string", "x-nullable": true}
            }
        },
        "animalInput": {
            "type": "object",
            "required": ["breed", "weight"],
            "properties": {
                "breed": {"type": "string", "minLength": 1, "maxLength": 255},
                "weight": {"type": "number", "exclusiveMinimum": true, "minimum": 0},
                "name": {"type": "string", "x-nullable": true, "maxLength": 255}
            }
        },
        "photo": {
            "type": "object",
            "properties": {"photoFilename": {"type": "string"}}
        },
        "validationErrors": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "object",
                    "properties": {
                        "body": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "properties": {"field": {"type": "string"}, "error": {"type": "string"}}
                            }
                        }
                    }
                }
            }
        },
        "loginInput": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "login": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"},
                "username": {"type": "string"}
            }
        },
        "me": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animals API",
	Description:      "CRUD de animales con subida de foto.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
