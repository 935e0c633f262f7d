// Package docs holds the swagger document served under /swagger.
// Regenerate it with: swag init -g restapi/router.go -o restapi/docs
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
        "/commands": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "ExecuteCommand runs the argv in the request body and responds with its reply as JSON.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Commands"],
                "summary": "ExecuteCommand runs one command",
                "parameters": [
                    {
                        "description": "Command and arguments",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/restapi.CommandRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.CommandResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/keys/{key}": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "GetKey responds with the type and contents of the key as JSON.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Keys"],
                "summary": "GetKey returns the value stored at a key.",
                "parameters": [
                    {
                        "minLength": 1,
                        "type": "string",
                        "description": "Key to fetch",
                        "name": "key",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.KeyValue"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "GetStats responds with the dirty counter and, when the backend can count them, the number of keys.",
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "GetStats returns keyspace counters.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.Stats"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "restapi.CommandRequest": {
            "type": "object",
            "required": ["args"],
            "properties": {
                "args": {"type": "array", "items": {"type": "string"}}
            }
        },
        "restapi.CommandResponse": {
            "type": "object",
            "properties": {
                "result": {}
            }
        },
        "restapi.KeyValue": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "type": {"type": "string"},
                "value": {}
            }
        },
        "restapi.Stats": {
            "type": "object",
            "properties": {
                "dirty": {"type": "integer"},
                "keys": {"type": "integer"},
                "version": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "meshin API",
	Description:      "Indirect lookup and partial sort commands over a Redis style keyspace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
