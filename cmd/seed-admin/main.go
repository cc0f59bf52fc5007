// Command seed-admin bootstraps a fresh database: default permission
// matrices, a head office branch, and the first super admin account.
//
// Usage:
//
//	seed-admin -email admin@example.com -password secret -name "Super Admin"
package main

import (
	"flag"
	"os"

	"go-backoffice-ws/internal/config"
	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/pkg/database"
	"go-backoffice-ws/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "super admin email")
	password := flag.String("password", "", "super admin password")
	name := flag.String("name", "Super Admin", "super admin display name")
	branchCode := flag.String("branch", "HO", "head office branch code")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *email == "" || *password == "" {
		log.Error().Msg("both -email and -password are required")
		flag.Usage()
		os.Exit(1)
	}

	db := database.ConnectDB(cfg.DatabaseDSN)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.UserBranch{},
		&model.PagePermission{},
		&model.CrudPermission{},
		&model.PaymentTerm{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.CashRequest{},
		&model.BulkPayment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	permissionRepo := repository.NewPermissionRepo(db)
	if err := permissionRepo.SeedDefaults(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default permissions")
	}
	log.Info().Msg("default permissions seeded")

	branchRepo := repository.NewBranchRepo(db)
	if _, err := branchRepo.FindByCode(*branchCode); err != nil {
		branch := &model.Branch{
			Code:     *branchCode,
			Name:     "Head Office",
			IsActive: true,
		}
		branch.CreatedBy = "system"
		branch.UpdatedBy = "system"
		if err := branchRepo.Create(branch); err != nil {
			log.Fatal().Err(err).Str("code", *branchCode).Msg("failed to create head office branch")
		}
		log.Info().Str("code", *branchCode).Msg("head office branch created")
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail(*email); err == nil {
		log.Info().Str("email", *email).Msg("user already exists, nothing to do")
		return
	}

	admin := &model.User{
		Email:      *email,
		FullName:   *name,
		Role:       model.RoleSuperAdmin,
		HomeBranch: branchCode,
		IsActive:   true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(*password); err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create super admin")
	}

	log.Info().Str("email", *email).Msg("super admin created")
}
