package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduVillage API",
        "description": "Registration, courses, enrollment, assignments, notes and leaderboards for EduVillage.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Student and teacher accounts"},
        {"name": "Courses", "description": "Course catalogue and enrollment"},
        {"name": "Content", "description": "Assignments and notes"},
        {"name": "Leaderboard", "description": "Per course rankings"},
        {"name": "Probes", "description": "Liveness, readiness and metrics"}
    ],
    "paths": {
        "/": {
            "get": {"tags": ["Probes"], "summary": "Plain text liveness", "produces": ["text/plain"], "responses": {"200": {"description": "Server is running"}}}
        },
        "/health": {
            "get": {"tags": ["Probes"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["Probes"], "summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "Store unreachable"}}}
        },
        "/metrics": {
            "get": {"tags": ["Probes"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "Metrics"}}}
        },
        "/student/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a student",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}],
                "responses": {"200": {"description": "Envelope", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/student/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Student login",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "Envelope with student and token", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/teacher/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a teacher",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterTeacherRequest"}}],
                "responses": {"200": {"description": "Envelope", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/teacher/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Teacher login",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "Envelope with teacher and token", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/course/add": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCourseRequest"}}],
                "responses": {"200": {"description": "Envelope with course", "schema": {"$ref": "#/definitions/Envelope"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/courses": {
            "get": {"tags": ["Courses"], "summary": "List every course", "responses": {"200": {"description": "Envelope with courses", "schema": {"$ref": "#/definitions/Envelope"}}}}
        },
        "/courses/teacher/{teacherId}": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses taught by a teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "teacherId", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Envelope with courses", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/student/select-course": {
            "post": {
                "tags": ["Courses"],
                "summary": "Enroll a student in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}],
                "responses": {"200": {"description": "Envelope", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/student/courses/{email}": {
            "get": {
                "tags": ["Courses"],
                "summary": "List a student's courses",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Envelope with courses", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/teacher/students/{courseId}": {
            "get": {
                "tags": ["Courses"],
                "summary": "List students enrolled in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "courseId", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Envelope with students", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/assignment/add": {
            "post": {
                "tags": ["Content"],
                "summary": "Create an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddAssignmentRequest"}}],
                "responses": {"200": {"description": "Envelope with assignment", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/assignments/student/{email}": {
            "get": {
                "tags": ["Content"],
                "summary": "List assignments of a student's courses",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Envelope with assignments", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/notes": {
            "post": {
                "tags": ["Content"],
                "summary": "Create a note",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddNoteRequest"}}],
                "responses": {"200": {"description": "Envelope", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/notes/student/{email}": {
            "get": {
                "tags": ["Content"],
                "summary": "List notes of a student's courses, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Envelope with notes", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/leaderboard/{courseId}": {
            "get": {
                "tags": ["Leaderboard"],
                "summary": "Course leaderboard by marks",
                "parameters": [{"name": "courseId", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Envelope with leaderboard", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/leaderboard/{courseId}/export": {
            "get": {
                "tags": ["Leaderboard"],
                "summary": "Download the leaderboard",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "Attachment"}}
            }
        }
    },
    "definitions": {
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["name", "email", "password", "education", "field"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "education": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "RegisterTeacherRequest": {
            "type": "object",
            "required": ["name", "email", "password", "subject"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "subject": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AddCourseRequest": {
            "type": "object",
            "required": ["course_name", "teacher_id"],
            "properties": {
                "course_name": {"type": "string"},
                "teacher_id": {"type": "integer"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "required": ["student_email", "course_name"],
            "properties": {
                "student_email": {"type": "string"},
                "course_name": {"type": "string"},
                "course_id": {"type": "integer"}
            }
        },
        "AddAssignmentRequest": {
            "type": "object",
            "required": ["title", "course_id"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "course_id": {"type": "integer"},
                "teacher_id": {"type": "integer"}
            }
        },
        "AddNoteRequest": {
            "type": "object",
            "required": ["teacher_id", "course_id", "content"],
            "properties": {
                "teacher_id": {"type": "integer"},
                "course_id": {"type": "integer"},
                "content": {"type": "string"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"},
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
