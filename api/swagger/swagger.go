package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Chronos Room API",
        "description": "Campus room booking: availability, reservations and approvals",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Rooms", "description": "Room catalog"},
        {"name": "Availability", "description": "Room availability lookups"},
        {"name": "Schedules", "description": "Recurring academic schedules"},
        {"name": "Reservations", "description": "Event reservation requests"},
        {"name": "Approvals", "description": "Reservation approval workflow"},
        {"name": "Buildings", "description": "Building catalog"},
        {"name": "Organizations", "description": "Requesting organizations"},
        {"name": "Documents", "description": "Reservation supporting documents"},
        {"name": "Exports", "description": "Schedule exports"},
        {"name": "Users", "description": "User directory"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Get the authenticated identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/rooms/available": {
            "get": {
                "tags": ["Availability"],
                "summary": "Find available rooms for a window",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "startTime", "in": "query", "type": "string", "required": true},
                    {"name": "endTime", "in": "query", "type": "string", "required": true},
                    {"name": "buildingId", "in": "query", "type": "string"},
                    {"name": "roomType", "in": "query", "type": "string"},
                    {"name": "minCapacity", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/rooms/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Check one room's availability for a window",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "startTime", "in": "query", "type": "string", "required": true},
                    {"name": "endTime", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List academic schedules",
                "parameters": [
                    {"name": "roomId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create academic schedule",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Overlaps an existing schedule"}
                }
            }
        },
        "/schedules/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete academic schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/reservations": {
            "get": {
                "tags": ["Reservations"],
                "summary": "List reservations",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "organization", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Reservations"],
                "summary": "Create reservation request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Room occupied; conflicts listed in meta"}
                }
            }
        },
        "/reservations/upcoming": {
            "get": {
                "tags": ["Reservations"],
                "summary": "List upcoming approved reservations",
                "parameters": [
                    {"name": "days", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reservations/check-conflicts": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Dry-run conflict check for a window",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConflictResult"}}
                }
            }
        },
        "/reservations/{id}": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Get reservation by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Reservations"],
                "summary": "Update a pending reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Room occupied or not pending"}
                }
            },
            "delete": {
                "tags": ["Reservations"],
                "summary": "Delete reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/reservations/{id}/approve": {
            "put": {
                "tags": ["Approvals"],
                "summary": "Advance a reservation through the approval workflow",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ApprovalRequest"}}
                ],
                "responses": {
                    "200": {"description": "Transition applied"},
                    "422": {"description": "Illegal transition or insufficient role"}
                }
            }
        },
        "/reservations/{id}/reject": {
            "put": {
                "tags": ["Approvals"],
                "summary": "Reject a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Transition applied"},
                    "422": {"description": "Illegal transition or insufficient role"}
                }
            }
        },
        "/reservations/{id}/cancel": {
            "put": {
                "tags": ["Approvals"],
                "summary": "Cancel a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Transition applied"},
                    "422": {"description": "Illegal transition"}
                }
            }
        },
        "/reservations/{id}/approval-history": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Get the approval audit trail of a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reservations/{id}/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List documents of a reservation",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Documents"],
                "summary": "Upload a supporting document",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"},
                    "413": {"description": "File too large"}
                }
            }
        },
        "/documents/{id}/download-url": {
            "get": {
                "tags": ["Documents"],
                "summary": "Issue a signed download URL",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/documents/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a document via signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/buildings": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List buildings",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Buildings"],
                "summary": "Create building",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/organizations": {
            "get": {
                "tags": ["Organizations"],
                "summary": "List organizations",
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Organizations"],
                "summary": "Create organization",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/exports/reservations": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the approved reservation schedule",
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string", "required": true},
                    {"name": "endDate", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "required": ["buildingId", "roomNumber", "roomType", "capacity"],
            "properties": {
                "buildingId": {"type": "string"},
                "roomNumber": {"type": "string"},
                "roomType": {"type": "string", "enum": ["CLASSROOM", "LABORATORY", "AUDITORIUM", "SEMINAR_ROOM", "MEETING_ROOM"]},
                "capacity": {"type": "integer"},
                "floor": {"type": "integer"},
                "description": {"type": "string"},
                "hasProjector": {"type": "boolean"},
                "isAvailable": {"type": "boolean"}
            }
        },
        "CreateReservationRequest": {
            "type": "object",
            "required": ["roomId", "organizationName", "eventTitle", "eventDate", "startTime", "endTime"],
            "properties": {
                "roomId": {"type": "string"},
                "organizationName": {"type": "string"},
                "eventTitle": {"type": "string"},
                "eventDate": {"type": "string", "format": "date"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "purpose": {"type": "string"},
                "expectedAttendees": {"type": "integer"}
            }
        },
        "ApprovalRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ADVISOR_APPROVED", "APPROVED", "REJECTED", "CANCELLED"]},
                "comments": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "ConflictResult": {
            "type": "object",
            "properties": {
                "has_conflict": {"type": "boolean"},
                "academic_conflicts": {"type": "array", "items": {"type": "string"}},
                "reservation_conflicts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
