package main

import (
	"fmt"
	"net/http"

	"github.com/driveline-dms/payroll-backend-go/internal/config"
	appHTTP "github.com/driveline-dms/payroll-backend-go/internal/handler/http"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/jwt"
	"github.com/driveline-dms/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/driveline-dms/payroll-backend-go/internal/service/payroll"
	timeoffService "github.com/driveline-dms/payroll-backend-go/internal/service/timeoff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeclockRepo := postgresql.NewTimeClockRepository(db)
	commissionRepo := postgresql.NewCommissionRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	timeoffRepo := postgresql.NewTimeOffRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	runExecutor := payrollService.NewRunExecutor(payrollRepo, employeeRepo, timeclockRepo, commissionRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, runExecutor)
	timeoffSvc := timeoffService.NewTimeOffService(timeoffRepo, employeeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	timeoffHandler := appHTTP.NewTimeOffHandler(timeoffSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, timeoffHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Error starting server:", err)
	}
}
