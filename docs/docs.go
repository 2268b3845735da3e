// Package docs registers the OpenAPI document served at /-/swagger.
// Regenerate with: swag init -g cmd/service/main.go -o docs
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
        "/-/build": {
            "get": {
                "description": "Returns version, commit and build time",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Build information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.BuildInfo"}}
                }
            }
        },
        "/-/live": {
            "get": {
                "description": "Reports that the process is running",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.livenessResponse"}}
                }
            }
        },
        "/-/ready": {
            "get": {
                "description": "Checks every registered upstream",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}}
                }
            }
        },
        "/api/v1/comments": {
            "get": {
                "description": "Returns comments matching the given filters; upstream failures yield an empty list",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List comments",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "postId", "in": "query"},
                    {"type": "string", "description": "Comment ID", "name": "id", "in": "query"},
                    {"type": "string", "description": "Comment name", "name": "name", "in": "query"},
                    {"type": "string", "description": "Commenter email", "name": "email", "in": "query"},
                    {"type": "string", "description": "Comment body", "name": "body", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CommentResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        },
        "/api/v1/posts": {
            "get": {
                "description": "Returns every post from the upstream service",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PostResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        },
        "/api/v1/posts/{id}": {
            "get": {
                "description": "Fetches one post; include=comments embeds its comments",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Set to 'comments' to embed comments", "name": "include", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        },
        "/api/v1/posts/{id}/comments": {
            "get": {
                "description": "Returns the comments of one post; upstream failures yield an empty list",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List a post's comments",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CommentResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CommentResponse": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "postId": {"type": "integer"}
            }
        },
        "dto.PostResponse": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/dto.CommentResponse"}},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "dto.Problem": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "traceId": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handlers.BuildInfo": {
            "type": "object",
            "properties": {
                "buildTime": {"type": "string"},
                "commit": {"type": "string"},
                "goVersion": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handlers.livenessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handlers.readinessResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"$ref": "#/definitions/ports.CheckResult"}},
                "status": {"type": "string"}
            }
        },
        "ports.CheckResult": {
            "type": "object",
            "properties": {
                "duration": {"type": "integer"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Posts Gateway API",
	Description:      "Re-exposes an upstream posts and comments API with RFC 7807 problem responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
