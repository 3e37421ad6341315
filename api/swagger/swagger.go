// Package swagger carries the OpenAPI document served at /docs.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/schedules": {
            "post": {
                "tags": ["schedules"],
                "summary": "Generate ranked schedules",
                "description": "Enumerates conflict-free one-section-per-course combinations and returns the top-N by total gap minutes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Ranked schedules", "schema": {"$ref": "#/definitions/dto.ScheduleResponse"}},
                    "400": {"description": "Invalid request"},
                    "404": {"description": "Unknown course"},
                    "422": {"description": "No feasible schedule"},
                    "502": {"description": "Catalog unreachable"}
                }
            }
        },
        "/schedules/visualized": {
            "post": {
                "tags": ["schedules"],
                "summary": "Generate schedules with a week-grid rendering",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ScheduleRequest"}
                    },
                    {
                        "name": "colored",
                        "in": "query",
                        "type": "boolean",
                        "description": "Include ANSI colors in the rendering"
                    }
                ],
                "responses": {
                    "200": {"description": "Ranked schedules with rendering"}
                }
            }
        },
        "/schedules/export": {
            "post": {
                "tags": ["schedules"],
                "summary": "Generate schedules as a downloadable document",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ScheduleRequest"}
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": ["csv", "pdf"],
                        "description": "Document format, csv by default"
                    }
                ],
                "responses": {
                    "200": {"description": "Document download"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Service is up"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["ops"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Dependencies reachable"},
                    "503": {"description": "A dependency is down"}
                }
            }
        }
    },
    "definitions": {
        "dto.ScheduleRequest": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"type": "string"},
                    "maxItems": 10,
                    "minItems": 1,
                    "example": ["CMSC351", "MATH240"]
                },
                "top": {"type": "integer", "minimum": 1, "maximum": 50, "example": 3},
                "filters": {"$ref": "#/definitions/dto.ScheduleFilters"}
            }
        },
        "dto.ScheduleFilters": {
            "type": "object",
            "properties": {
                "earliest_start": {"type": "string", "example": "9:00am"},
                "latest_end": {"type": "string", "example": "5:00pm"},
                "open_seats_only": {"type": "boolean"},
                "exclude_satellite_campus": {"type": "boolean"},
                "exclude_first_year_cohort": {"type": "boolean"}
            }
        },
        "dto.ScheduleResponse": {
            "type": "object",
            "properties": {
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/dto.GeneratedSchedule"}
                },
                "expanded_nodes": {"type": "integer"},
                "truncated": {"type": "boolean"}
            }
        },
        "dto.GeneratedSchedule": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "total_gap_minutes": {"type": "integer"},
                "span_minutes": {"type": "integer"},
                "days_with_meetings": {"type": "integer"},
                "sections": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/dto.SectionView"}
                }
            }
        },
        "dto.SectionView": {
            "type": "object",
            "properties": {
                "section_id": {"type": "string", "example": "CMSC351-0101"},
                "course_id": {"type": "string", "example": "CMSC351"},
                "seats_open": {"type": "integer"},
                "seats_total": {"type": "integer"},
                "waitlist": {"type": "integer"},
                "satellite_campus": {"type": "boolean"},
                "first_year_cohort": {"type": "boolean"},
                "instructors": {"type": "array", "items": {"type": "string"}},
                "meetings": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/dto.MeetingView"}
                }
            }
        },
        "dto.MeetingView": {
            "type": "object",
            "properties": {
                "day": {"type": "string", "example": "Monday"},
                "start": {"type": "string", "example": "9:00AM"},
                "end": {"type": "string", "example": "9:50AM"},
                "location": {"type": "string", "example": "CSI 1115"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Plastron API",
	Description:      "Course schedule generation service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
