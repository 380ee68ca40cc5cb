package swagger

import (
	"strings"

	"github.com/swaggo/swag"
)

// BasePath is substituted into the document; main sets it to the configured API prefix.
var BasePath = "/api/v1"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Events API",
        "description": "College event registration, attendance and feedback.",
        "version": "1.0.0"
    },
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Colleges"
        },
        {
            "name": "Events"
        },
        {
            "name": "Students"
        },
        {
            "name": "Registrations"
        },
        {
            "name": "Attendance"
        },
        {
            "name": "Feedback"
        },
        {
            "name": "Reports"
        },
        {
            "name": "Exports"
        },
        {
            "name": "Health",
            "description": "Served at the server root, outside the API prefix"
        }
    ],
    "paths": {
        "/colleges": {
            "get": {
                "tags": [
                    "Colleges"
                ],
                "summary": "List colleges",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Colleges"
                ],
                "summary": "Create college",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCollegeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Duplicate college",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/colleges/{college_id}": {
            "get": {
                "tags": [
                    "Colleges"
                ],
                "summary": "Get college with stats",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Colleges"
                ],
                "summary": "Update college",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateCollegeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List active events",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "event_type",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "date_from",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "date_to",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Create event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateEventRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "Get event with stats",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Events"
                ],
                "summary": "Update event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EventRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}/cancel": {
            "patch": {
                "tags": [
                    "Events"
                ],
                "summary": "Cancel event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}/registrations": {
            "get": {
                "tags": [
                    "Registrations"
                ],
                "summary": "List an event's registrations",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}/attendance": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List an event's check-ins with stats",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}/absentees": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List confirmed registrants without a present check-in",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/events/{event_id}/feedback": {
            "get": {
                "tags": [
                    "Feedback"
                ],
                "summary": "List an event's feedback with rating stats",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List students",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "department",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "year_of_study",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Create student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateStudentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/{student_id}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Get student with participation stats",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Students"
                ],
                "summary": "Update student",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateStudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/college/{college_id}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List students of a college",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/{student_id}/registrations": {
            "get": {
                "tags": [
                    "Registrations"
                ],
                "summary": "List a student's registrations",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/{student_id}/attendance": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List a student's attendance",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/{student_id}/feedback": {
            "get": {
                "tags": [
                    "Feedback"
                ],
                "summary": "List a student's feedback",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/register": {
            "post": {
                "tags": [
                    "Registrations"
                ],
                "summary": "Register a student for an event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EnrollRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Student or event not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Already registered or event inactive",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/registrations/{registration_id}": {
            "get": {
                "tags": [
                    "Registrations"
                ],
                "summary": "Get a registration",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "registration_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Registrations"
                ],
                "summary": "Cancel a registration",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "registration_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/attendance": {
            "post": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Mark a student present",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CheckInRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Already marked",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Not registered or future event",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/attendance/{attendance_id}": {
            "patch": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Override an attendance status",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "attendance_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateAttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/feedback": {
            "post": {
                "tags": [
                    "Feedback"
                ],
                "summary": "Submit feedback for an attended event",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitFeedbackRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid rating",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Attendance required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Feedback already submitted",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/students/feedback/{feedback_id}": {
            "put": {
                "tags": [
                    "Feedback"
                ],
                "summary": "Revise submitted feedback",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "feedback_id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReviseFeedbackRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/event-popularity": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Rank active events by confirmed registrations",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "event_type",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/student-participation": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Student participation report",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/top-students": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Most active students by attended events",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/attendance-stats": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Attendance statistics",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "event_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/feedback": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Per-event rating stats within a rating band",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "event_type",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "min_rating",
                        "in": "query",
                        "type": "number",
                        "required": false
                    },
                    {
                        "name": "max_rating",
                        "in": "query",
                        "type": "number",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/rating-by-type": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Average rating per event type",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "college_id",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/exports": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "summary": "Queue a report export",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ExportRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/exports/{id}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export job status",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/exports/download/{token}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download a finished export",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Unknown token",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateCollegeRequest": {
            "type": "object",
            "properties": {
                "college_id": {
                    "type": "string"
                },
                "college_name": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "contact_email": {
                    "type": "string"
                }
            },
            "required": [
                "college_id",
                "college_name"
            ]
        },
        "UpdateCollegeRequest": {
            "type": "object",
            "properties": {
                "college_name": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "contact_email": {
                    "type": "string"
                }
            },
            "required": [
                "college_name"
            ]
        },
        "EventRequest": {
            "type": "object",
            "properties": {
                "event_name": {
                    "type": "string"
                },
                "event_description": {
                    "type": "string"
                },
                "event_type": {
                    "type": "string",
                    "enum": [
                            "Workshop",
                            "Fest",
                            "Seminar",
                            "Hackathon",
                            "Tech Talk"
                        ]
                },
                "event_date": {
                    "type": "string",
                    "format": "date"
                },
                "event_time": {
                    "type": "string",
                    "example": "14:00"
                },
                "duration_hours": {
                    "type": "number"
                },
                "venue": {
                    "type": "string"
                },
                "max_capacity": {
                    "type": "integer",
                    "minimum": 1
                }
            },
            "required": [
                "event_name",
                "event_type",
                "event_date",
                "event_time",
                "venue",
                "max_capacity"
            ]
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "college_id": {
                    "type": "string"
                },
                "created_by": {
                    "type": "string"
                },
                "event_name": {
                    "type": "string"
                },
                "event_description": {
                    "type": "string"
                },
                "event_type": {
                    "type": "string",
                    "enum": [
                            "Workshop",
                            "Fest",
                            "Seminar",
                            "Hackathon",
                            "Tech Talk"
                        ]
                },
                "event_date": {
                    "type": "string",
                    "format": "date"
                },
                "event_time": {
                    "type": "string",
                    "example": "14:00"
                },
                "duration_hours": {
                    "type": "number"
                },
                "venue": {
                    "type": "string"
                },
                "max_capacity": {
                    "type": "integer",
                    "minimum": 1
                }
            },
            "required": [
                "college_id",
                "event_name",
                "event_type",
                "event_date",
                "event_time",
                "venue",
                "max_capacity"
            ]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "college_id": {
                    "type": "string"
                },
                "student_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "year_of_study": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 6
                },
                "department": {
                    "type": "string"
                }
            },
            "required": [
                "college_id",
                "student_name",
                "email"
            ]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "student_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "year_of_study": {
                    "type": "integer"
                },
                "department": {
                    "type": "string"
                }
            },
            "required": [
                "student_name",
                "email"
            ]
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "string"
                },
                "event_id": {
                    "type": "string"
                }
            },
            "required": [
                "student_id",
                "event_id"
            ]
        },
        "CheckInRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "string"
                },
                "event_id": {
                    "type": "string"
                }
            },
            "required": [
                "student_id",
                "event_id"
            ]
        },
        "UpdateAttendanceRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "present",
                        "absent"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "SubmitFeedbackRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "string"
                },
                "event_id": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "comments": {
                    "type": "string"
                }
            },
            "required": [
                "student_id",
                "event_id",
                "rating"
            ]
        },
        "ReviseFeedbackRequest": {
            "type": "object",
            "properties": {
                "rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "comments": {
                    "type": "string"
                }
            },
            "required": [
                "rating"
            ]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "enum": [
                        "event-popularity",
                        "student-participation",
                        "top-students",
                        "attendance-stats",
                        "feedback",
                        "rating-by-type"
                    ]
                },
                "format": {
                    "type": "string",
                    "enum": [
                        "csv",
                        "pdf"
                    ]
                },
                "filters": {
                    "type": "object"
                }
            },
            "required": [
                "type",
                "format"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document with the current base path.
func (s *swaggerDoc) ReadDoc() string {
	return strings.ReplaceAll(docTemplate, "{{.BasePath}}", BasePath)
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
