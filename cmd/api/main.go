package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffhub/staffhub-backend-go/internal/config"
	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	appHTTP "github.com/staffhub/staffhub-backend-go/internal/handler/http"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/cron"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/email"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/storage"
	"github.com/staffhub/staffhub-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhub/staffhub-backend-go/internal/service/attendance"
	authService "github.com/staffhub/staffhub-backend-go/internal/service/auth"
	dashboardService "github.com/staffhub/staffhub-backend-go/internal/service/dashboard"
	leaveService "github.com/staffhub/staffhub-backend-go/internal/service/leave"
	reportService "github.com/staffhub/staffhub-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	roles := user.NewRoleConfig(user.DefaultGrants())
	clk := clock.System()

	cutoff, err := attendance.ParseCutoff(cfg.Attendance.LateCutoff)
	if err != nil {
		log.Fatal("Invalid late cutoff: ", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, employeeRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, clk, cutoff, roles)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, employeeRepo, userRepo, emailService, fileStorage, clk, roles, cfg.Leave.Quotas)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, leaveRequestRepo, clk, roles)
	reportSvc := reportService.NewReportService(reportRepo, roles)

	scheduler := cron.NewScheduler()
	cron.NewAbsenceJobs(attendanceRepo, employeeRepo, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:            cfg,
		JWTService:        jwtService,
		Roles:             roles,
		AuthHandler:       appHTTP.NewAuthHandler(authSvc, jwtService),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		LeaveHandler:      appHTTP.NewLeaveHandler(leaveSvc, fileStorage),
		ReportHandler:     appHTTP.NewReportHandler(reportSvc),
		DashboardHandler:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
