package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/loanboard/internal/cache"
	"github.com/GlebRadaev/loanboard/internal/repo"
	"github.com/GlebRadaev/loanboard/internal/service/dashboardservice"
	"github.com/GlebRadaev/loanboard/internal/service/uploadservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos := &repo.Repositories{
		BatchRepo: uploadservice.NewMockBatchRepo(ctrl),
		LoanRepo:  uploadservice.NewMockLoanRepo(ctrl),
	}

	services := New(repos, cache.Noop{}, Options{IngestTimeout: time.Second, Location: time.UTC})

	assert.NotNil(t, services.UploadService)
	assert.NotNil(t, services.DashboardService)
	assert.NotNil(t, services.Refresher)
	assert.IsType(t, &uploadservice.Service{}, services.UploadService)
	assert.IsType(t, &dashboardservice.Service{}, services.DashboardService)
}
