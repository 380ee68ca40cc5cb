package main

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/handler"
)

type routes struct {
	colleges      *handler.CollegeHandler
	events        *handler.EventHandler
	students      *handler.StudentHandler
	registrations *handler.RegistrationHandler
	attendance    *handler.AttendanceHandler
	feedback      *handler.FeedbackHandler
	reports       *handler.ReportHandler
	exports       *handler.ExportHandler
	ops           *handler.MetricsHandler
}

func (rt routes) register(r *gin.Engine, prefix string) {
	r.GET("/health", rt.ops.Health)
	r.GET("/ready", rt.ops.Ready)
	r.GET("/metrics", rt.ops.Prometheus)

	api := r.Group(prefix)

	colleges := api.Group("/colleges")
	colleges.POST("", rt.colleges.Create)
	colleges.GET("", rt.colleges.List)
	colleges.GET("/:college_id", rt.colleges.Get)
	colleges.PUT("/:college_id", rt.colleges.Update)

	events := api.Group("/events")
	events.POST("", rt.events.Create)
	events.GET("", rt.events.List)
	events.GET("/:event_id", rt.events.Get)
	events.PUT("/:event_id", rt.events.Update)
	events.PATCH("/:event_id/cancel", rt.events.Cancel)
	events.GET("/:event_id/registrations", rt.registrations.ListByEvent)
	events.GET("/:event_id/attendance", rt.attendance.ListByEvent)
	events.GET("/:event_id/absentees", rt.attendance.Absentees)
	events.GET("/:event_id/feedback", rt.feedback.ListByEvent)

	students := api.Group("/students")
	students.GET("", rt.students.List)
	students.POST("", rt.students.Create)
	students.GET("/college/:college_id", rt.students.ListByCollege)
	students.POST("/register", rt.registrations.Enroll)
	students.GET("/registrations/:registration_id", rt.registrations.Get)
	students.DELETE("/registrations/:registration_id", rt.registrations.Cancel)
	students.POST("/attendance", rt.attendance.CheckIn)
	students.PATCH("/attendance/:attendance_id", rt.attendance.UpdateStatus)
	students.POST("/feedback", rt.feedback.Submit)
	students.PUT("/feedback/:feedback_id", rt.feedback.Revise)
	students.GET("/:student_id", rt.students.Get)
	students.PUT("/:student_id", rt.students.Update)
	students.GET("/:student_id/registrations", rt.registrations.ListByStudent)
	students.GET("/:student_id/attendance", rt.attendance.ListByStudent)
	students.GET("/:student_id/feedback", rt.feedback.ListByStudent)

	reports := api.Group("/reports")
	reports.GET("/event-popularity", rt.reports.EventPopularity)
	reports.GET("/student-participation", rt.reports.StudentParticipation)
	reports.GET("/top-students", rt.reports.TopStudents)
	reports.GET("/attendance-stats", rt.reports.AttendanceStats)
	reports.GET("/feedback", rt.reports.Feedback)
	reports.GET("/rating-by-type", rt.reports.RatingByType)

	if rt.exports != nil {
		reports.POST("/exports", rt.exports.Create)
		reports.GET("/exports/:id", rt.exports.Status)
		reports.GET("/exports/download/:token", rt.exports.Download)
	}
}
