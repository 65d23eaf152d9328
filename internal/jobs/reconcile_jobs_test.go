package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalincome-backend/internal/config"
	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/jobs"
)

type mockIncomeRepo struct {
	mock.Mock
}

func (m *mockIncomeRepo) Create(ctx context.Context, inc *domain.Income) error {
	return m.Called(ctx, inc).Error(0)
}
func (m *mockIncomeRepo) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *mockIncomeRepo) GetByMessageID(ctx context.Context, messageID string) (*domain.Income, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *mockIncomeRepo) FindByReference(ctx context.Context, reference, apartmentID string, source domain.Channel) (*domain.Income, error) {
	args := m.Called(ctx, reference, apartmentID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *mockIncomeRepo) MarkCancelled(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockIncomeRepo) List(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Income), int32(args.Int(1)), args.Error(2)
}
func (m *mockIncomeRepo) PromoteDue(ctx context.Context, asOf time.Time) ([]domain.Income, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}
func (m *mockIncomeRepo) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockIncomeRepo) SummarizeDay(ctx context.Context, day time.Time) (*domain.ActivitySummary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivitySummary), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendDailySummary(ctx context.Context, to string, summary *domain.ActivitySummary) error {
	return m.Called(ctx, to, summary).Error(0)
}

func emptySummary() *domain.ActivitySummary {
	return &domain.ActivitySummary{
		Date:     time.Now().UTC().AddDate(0, 0, -1),
		ByStatus: map[domain.IncomeStatus]int32{},
		BySource: map[domain.Channel]domain.SourceActivity{},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Reconcile: config.ReconcileConfig{RetentionDays: 180},
	}
}

func TestRunReconciliationRunsAllSteps(t *testing.T) {
	incomes := new(mockIncomeRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(incomes, email, testConfig())

	incomes.On("PromoteDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Income{{ID: "inc-1"}}, nil)
	incomes.On("DeleteCancelledBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil)
	incomes.On("SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(emptySummary(), nil)

	ran := runner.RunReconciliation()

	assert.True(t, ran)
	incomes.AssertExpectations(t)
	// No recipient configured, so no report mail goes out.
	email.AssertNotCalled(t, "SendDailySummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunReconciliationIsolatesStepFailures(t *testing.T) {
	incomes := new(mockIncomeRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(incomes, email, testConfig())

	incomes.On("PromoteDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("connection refused"))
	incomes.On("DeleteCancelledBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)
	incomes.On("SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(emptySummary(), nil)

	ran := runner.RunReconciliation()

	assert.True(t, ran)
	incomes.AssertExpectations(t)
}

func TestRunReconciliationRecoversFromPanic(t *testing.T) {
	incomes := new(mockIncomeRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(incomes, email, testConfig())

	incomes.On("PromoteDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { panic("boom") }).
		Return(nil, nil)
	incomes.On("DeleteCancelledBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)
	incomes.On("SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(emptySummary(), nil)

	ran := runner.RunReconciliation()

	assert.True(t, ran)
	incomes.AssertCalled(t, "DeleteCancelledBefore", mock.Anything, mock.AnythingOfType("time.Time"))
	incomes.AssertCalled(t, "SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestRunReconciliationSkipsOverlappingSweep(t *testing.T) {
	incomes := new(mockIncomeRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(incomes, email, testConfig())

	started := make(chan struct{})
	release := make(chan struct{})
	incomes.On("PromoteDue", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, nil)
	incomes.On("DeleteCancelledBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)
	incomes.On("SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(emptySummary(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var first bool
	go func() {
		defer wg.Done()
		first = runner.RunReconciliation()
	}()

	<-started
	second := runner.RunReconciliation()
	close(release)
	wg.Wait()

	assert.True(t, first)
	assert.False(t, second)
}

func TestSendActivityReportMailsRecipient(t *testing.T) {
	incomes := new(mockIncomeRepo)
	email := new(mockEmailService)
	cfg := testConfig()
	cfg.Reconcile.ReportRecipient = "owner@example.com"
	cfg.SMTP.Host = "smtp.example.com"
	runner := jobs.NewJobRunner(incomes, email, cfg)

	summary := emptySummary()
	incomes.On("SummarizeDay", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(summary, nil)
	email.On("SendDailySummary", mock.Anything, "owner@example.com", summary).
		Return(nil)

	runner.SendActivityReport()

	email.AssertExpectations(t)
}
