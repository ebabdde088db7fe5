package repo

import (
	"github.com/GlebRadaev/loanboard/internal/pg"
	batchrepo "github.com/GlebRadaev/loanboard/internal/repo/batch-repo"
	loanrepo "github.com/GlebRadaev/loanboard/internal/repo/loan-repo"
	"github.com/GlebRadaev/loanboard/internal/service/uploadservice"
)

type Repositories struct {
	BatchRepo uploadservice.BatchRepo
	LoanRepo  uploadservice.LoanRepo
}

func New(conn pg.Database, txManager pg.TXManager, batchSize int) *Repositories {
	return &Repositories{
		BatchRepo: batchrepo.New(conn),
		LoanRepo:  loanrepo.New(conn, txManager, batchSize),
	}
}
