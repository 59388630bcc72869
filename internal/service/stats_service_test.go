package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
)

type mockStatsRepo struct {
	overview      repository.DashboardCounts
	requesterFn   func(ctx context.Context, userID string) (int64, int64, error)
	technicianFn  func(ctx context.Context, technicianID string) (int64, int64, error)
	overviewCalls int
}

func (m *mockStatsRepo) Overview(ctx context.Context) (repository.DashboardCounts, error) {
	m.overviewCalls++
	return m.overview, nil
}

func (m *mockStatsRepo) CountForRequester(ctx context.Context, userID string) (int64, int64, error) {
	return m.requesterFn(ctx, userID)
}

func (m *mockStatsRepo) CountForTechnician(ctx context.Context, technicianID string) (int64, int64, error) {
	return m.technicianFn(ctx, technicianID)
}

func TestStatsServiceDashboard(t *testing.T) {
	repo := &mockStatsRepo{
		overview: repository.DashboardCounts{
			Total: 10, Open: 4, InProgress: 3, Closed: 3, Urgent: 2,
		},
		requesterFn: func(ctx context.Context, userID string) (int64, int64, error) {
			assert.Equal(t, "u1", userID)
			return 5, 2, nil
		},
		technicianFn: func(ctx context.Context, technicianID string) (int64, int64, error) {
			assert.Equal(t, "t1", technicianID)
			return 6, 4, nil
		},
	}
	service := NewStatsService(repo, nil, zap.NewNop())

	t.Run("requester sees own tickets", func(t *testing.T) {
		actor := domain.User{ID: "u1", Role: domain.RoleRequester}
		counts, err := service.Dashboard(context.Background(), &actor)
		require.NoError(t, err)
		assert.Equal(t, int64(10), counts.Total)
		assert.Equal(t, int64(5), counts.Mine)
		assert.Equal(t, int64(2), counts.PendingMine)
	})

	t.Run("technician sees the open-or-assigned union", func(t *testing.T) {
		actor := domain.User{ID: "t1", Role: domain.RoleTechnician}
		counts, err := service.Dashboard(context.Background(), &actor)
		require.NoError(t, err)
		assert.Equal(t, int64(6), counts.Mine)
		assert.Equal(t, int64(4), counts.PendingMine)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		actor := domain.User{ID: "a1", Role: domain.RoleAdmin}
		counts, err := service.Dashboard(context.Background(), &actor)
		require.NoError(t, err)
		assert.Equal(t, int64(10), counts.Mine)
		assert.Equal(t, int64(7), counts.PendingMine, "open plus in progress")
	})
}
