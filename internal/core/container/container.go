package container

import (
	"database/sql"

	"github.com/marcomamdouh99/pro/internal/branches"
	"github.com/marcomamdouh99/pro/internal/catalog"
	"github.com/marcomamdouh99/pro/internal/inventory/ledger"
	"github.com/marcomamdouh99/pro/internal/orders"
	"github.com/marcomamdouh99/pro/internal/reports"
	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/internal/suppliers"
	"github.com/marcomamdouh99/pro/internal/transfers"
	"github.com/marcomamdouh99/pro/internal/users"
	"github.com/marcomamdouh99/pro/internal/waste"
	"github.com/marcomamdouh99/pro/pkg/auditlog"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type Container struct {
	Repository        *repository.Repository
	AuditLog          *auditlog.Auditlog
	LoginHandler      *security.LoginHandler
	IngredientHandler *catalog.IngredientHandler
	BranchHandler     *branches.BranchHandler
	SupplierHandler   *suppliers.SupplierHandler
	LedgerHandler     *ledger.LedgerHandler
	OrderHandler      *orders.OrderHandler
	TransferHandler   *transfers.TransferHandler
	WasteHandler      *waste.WasteHandler
	ReportHandler     *reports.ReportHandler
	UserHandler       *users.UsersHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo)

	ledgerRepo := ledger.NewRepository(repo)
	ingredientRepo := catalog.NewIngredientRepository(repo)
	branchRepo := branches.NewBranchRepository(repo)
	supplierRepo := suppliers.NewSupplierRepository(repo)
	orderRepo := orders.NewRepository(repo)
	transferRepo := transfers.NewRepository(repo)
	wasteRepo := waste.NewRepository(repo)
	reportRepo := reports.NewReportRepository(repo)
	userRepo := users.NewRepository(repo)

	orderService := orders.NewService(repo, orderRepo, ledgerRepo, auditLog)
	transferService := transfers.NewService(repo, transferRepo, ledgerRepo, auditLog)
	wasteService := waste.NewService(repo, wasteRepo, ledgerRepo, ingredientRepo, auditLog)

	return &Container{
		Repository:        repo,
		AuditLog:          auditLog,
		LoginHandler:      security.NewLoginHandler(repo),
		IngredientHandler: catalog.NewIngredientHandler(ingredientRepo),
		BranchHandler:     branches.NewBranchHandler(branchRepo, ledgerRepo),
		SupplierHandler:   suppliers.NewSupplierHandler(supplierRepo),
		LedgerHandler:     ledger.NewHandler(ledgerRepo),
		OrderHandler:      orders.NewHandler(orderService),
		TransferHandler:   transfers.NewHandler(transferService),
		WasteHandler:      waste.NewHandler(wasteService),
		ReportHandler:     reports.NewReportHandler(reportRepo),
		UserHandler:       users.NewHandler(userRepo),
	}
}
