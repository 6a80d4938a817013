package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	useCaseContact "go-campzeo-client/src/application/usecases/contact"
	domainContact "go-campzeo-client/src/domain/contact"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockContactUseCase struct {
	listFn   func(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error)
	createFn func(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error)
	deleteFn func(ctx context.Context, id string) error
	exportFn func(ctx context.Context) (*useCaseContact.Export, error)
}

func (m *MockContactUseCase) List(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error) {
	return m.listFn(ctx, filter)
}
func (m *MockContactUseCase) Get(_ context.Context, id string) (*domainContact.Contact, error) {
	return &domainContact.Contact{ID: id}, nil
}
func (m *MockContactUseCase) Create(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error) {
	return m.createFn(ctx, form)
}
func (m *MockContactUseCase) Update(context.Context, string, *domainContact.Form) (*domainContact.Contact, error) {
	return nil, nil
}
func (m *MockContactUseCase) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *MockContactUseCase) Export(ctx context.Context) (*useCaseContact.Export, error) {
	return m.exportFn(ctx)
}

func setupContext(method string, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func TestContactController_List(t *testing.T) {
	var got domainContact.ListFilter
	useCase := &MockContactUseCase{
		listFn: func(_ context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error) {
			got = filter
			return []domainContact.Contact{{ID: "k1", Name: "Asha"}}, nil
		},
	}
	controller := NewContactController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodGet, "/v1/contacts?search=as&campaignId=c1&limit=5", nil)
	controller.List(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainContact.ListFilter{Search: "as", CampaignID: "c1", Page: 1, Limit: 5}, got)

	var response []ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, []string{}, response[0].CampaignIDs)
}

func TestContactController_ListBadPage(t *testing.T) {
	controller := NewContactController(&MockContactUseCase{}, logger.NewNopLogger())

	ctx, _ := setupContext(http.MethodGet, "/v1/contacts?page=two", nil)
	controller.List(ctx)

	require.Len(t, ctx.Errors, 1)
	assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.ValidationError))
}

func TestContactController_Create(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		wantStatus int
		wantErrs   int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "rejected by validation", createErr: domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "mobile", Message: "bad"}}), wantStatus: http.StatusOK, wantErrs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domainContact.Form
			useCase := &MockContactUseCase{
				createFn: func(_ context.Context, form *domainContact.Form) (*domainContact.Contact, error) {
					got = form
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &domainContact.Contact{ID: "k1", Name: form.Name}, nil
				},
			}
			controller := NewContactController(useCase, logger.NewNopLogger())

			ctx, w := setupContext(http.MethodPost, "/v1/contacts",
				[]byte(`{"name":"Asha","email":"asha@example.com","mobile":"9876543210","whatsapp":"9876543210"}`))
			controller.Create(ctx)

			require.NotNil(t, got)
			assert.Equal(t, "9876543210", got.WhatsApp)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, ctx.Errors, tt.wantErrs)
		})
	}
}

func TestContactController_Delete(t *testing.T) {
	var deleted string
	useCase := &MockContactUseCase{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	controller := NewContactController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodDelete, "/v1/contacts/k1", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "k1"}}
	controller.Delete(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "k1", deleted)
}

func TestContactController_Export(t *testing.T) {
	useCase := &MockContactUseCase{
		exportFn: func(context.Context) (*useCaseContact.Export, error) {
			return &useCaseContact.Export{
				FileName:    "contacts-2025-01-05.csv",
				ContentType: "text/csv",
				Data:        []byte("name,email\nAsha,asha@example.com\n"),
			}, nil
		},
	}
	controller := NewContactController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodGet, "/v1/contacts/export", nil)
	controller.Export(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="contacts-2025-01-05.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Asha,asha@example.com")
}
