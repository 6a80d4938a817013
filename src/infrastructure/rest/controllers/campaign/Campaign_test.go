package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockCampaignUseCase struct {
	listFn     func(ctx context.Context, query backend.CampaignQuery) ([]domainCampaign.Campaign, error)
	createFn   func(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error)
	getPostFn  func(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error)
	sendPostFn func(ctx context.Context, campaignID string, postID string) error
}

func (m *MockCampaignUseCase) List(ctx context.Context, query backend.CampaignQuery) ([]domainCampaign.Campaign, error) {
	return m.listFn(ctx, query)
}
func (m *MockCampaignUseCase) Get(context.Context, string) (*domainCampaign.Campaign, error) {
	return nil, nil
}
func (m *MockCampaignUseCase) Create(ctx context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	return m.createFn(ctx, form)
}
func (m *MockCampaignUseCase) Update(context.Context, string, *domainCampaign.Form) (*domainCampaign.Campaign, error) {
	return nil, nil
}
func (m *MockCampaignUseCase) Delete(context.Context, string) error {
	return nil
}
func (m *MockCampaignUseCase) ListPosts(context.Context, string) ([]domainCampaign.Post, error) {
	return nil, nil
}
func (m *MockCampaignUseCase) GetPost(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error) {
	return m.getPostFn(ctx, campaignID, postID)
}
func (m *MockCampaignUseCase) DeletePost(context.Context, string, string) error {
	return nil
}
func (m *MockCampaignUseCase) SendPost(ctx context.Context, campaignID string, postID string) error {
	return m.sendPostFn(ctx, campaignID, postID)
}

func setupContext(method string, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func TestCampaignController_List(t *testing.T) {
	var got backend.CampaignQuery
	useCase := &MockCampaignUseCase{
		listFn: func(_ context.Context, query backend.CampaignQuery) ([]domainCampaign.Campaign, error) {
			got = query
			return []domainCampaign.Campaign{{ID: "c1", Name: "Launch"}}, nil
		},
	}
	controller := NewCampaignController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodGet, "/v1/campaigns?search=lau&page=2", nil)
	controller.List(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lau", got.Search)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 20, got.Limit)

	var body []CampaignResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Launch", body[0].Name)
	assert.NotNil(t, body[0].ContactIDs)
}

func TestCampaignController_List_BadPage(t *testing.T) {
	controller := NewCampaignController(&MockCampaignUseCase{}, logger.NewNopLogger())
	ctx, _ := setupContext(http.MethodGet, "/v1/campaigns?page=two", nil)
	controller.List(ctx)

	require.Len(t, ctx.Errors, 1)
	assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.ValidationError))
}

func TestCampaignController_Create(t *testing.T) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	useCase := &MockCampaignUseCase{
		createFn: func(_ context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
			return &domainCampaign.Campaign{ID: "c9", Name: form.Name, StartDate: form.StartDate, EndDate: form.EndDate}, nil
		},
	}
	controller := NewCampaignController(useCase, logger.NewNopLogger())

	payload, _ := json.Marshal(CampaignRequest{Name: "May", Description: "May posts", StartDate: backend.Date{Time: start}, EndDate: backend.Date{Time: start.AddDate(0, 0, 30)}})
	ctx, w := setupContext(http.MethodPost, "/v1/campaigns", payload)
	controller.Create(ctx)

	require.Equal(t, http.StatusCreated, w.Code)
	var body CampaignResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "c9", body.ID)
	assert.True(t, start.Equal(body.StartDate))
}

func TestCampaignController_Create_DateOnlyBody(t *testing.T) {
	var got *domainCampaign.Form
	useCase := &MockCampaignUseCase{
		createFn: func(_ context.Context, form *domainCampaign.Form) (*domainCampaign.Campaign, error) {
			got = form
			return &domainCampaign.Campaign{ID: "c10", Name: form.Name, StartDate: form.StartDate, EndDate: form.EndDate}, nil
		},
	}
	controller := NewCampaignController(useCase, logger.NewNopLogger())

	body := []byte(`{"name":"June","description":"June posts","startDate":"2025-06-01","endDate":"2025-06-30"}`)
	ctx, w := setupContext(http.MethodPost, "/v1/campaigns", body)
	controller.Create(ctx)

	require.Empty(t, ctx.Errors)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), got.EndDate)
}

func TestCampaignController_Create_InvalidJSON(t *testing.T) {
	controller := NewCampaignController(&MockCampaignUseCase{}, logger.NewNopLogger())
	ctx, _ := setupContext(http.MethodPost, "/v1/campaigns", []byte("{"))
	controller.Create(ctx)

	require.Len(t, ctx.Errors, 1)
	assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.ValidationError))
}

func TestCampaignController_GetPost_NotFound(t *testing.T) {
	useCase := &MockCampaignUseCase{
		getPostFn: func(context.Context, string, string) (*domainCampaign.Post, error) {
			return nil, domainErrors.NewBackendError(404, "")
		},
	}
	controller := NewCampaignController(useCase, logger.NewNopLogger())
	ctx, _ := setupContext(http.MethodGet, "/v1/campaigns/c1/posts/p1", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "c1"}, {Key: "postId", Value: "p1"}}
	controller.GetPost(ctx)

	require.Len(t, ctx.Errors, 1)
	assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.NotFound))
}

func TestCampaignController_SendPost(t *testing.T) {
	var sent string
	useCase := &MockCampaignUseCase{
		sendPostFn: func(_ context.Context, campaignID string, postID string) error {
			sent = campaignID + "/" + postID
			return nil
		},
	}
	controller := NewCampaignController(useCase, logger.NewNopLogger())
	ctx, w := setupContext(http.MethodPost, "/v1/campaigns/c1/posts/p1/send", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "c1"}, {Key: "postId", Value: "p1"}}
	controller.SendPost(ctx)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "c1/p1", sent)
}
