package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainAI "go-campzeo-client/src/domain/ai"
	domainBilling "go-campzeo-client/src/domain/billing"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainContact "go-campzeo-client/src/domain/contact"
	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/apiclient"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type route struct {
	method string
	path   string
	status int
	body   string
	check  func(t *testing.T, r *http.Request, body []byte)
}

func newBackend(t *testing.T, routes ...route) (*apiclient.Client, *logger.Logger) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, rt := range routes {
			if rt.method == r.Method && rt.path == r.URL.Path {
				body, _ := io.ReadAll(r.Body)
				if rt.check != nil {
					rt.check(t, r, body)
				}
				status := rt.status
				if status == 0 {
					status = http.StatusOK
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(rt.body))
				return
			}
		}
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	log := logger.NewNopLogger()
	client, err := apiclient.NewClient(server.URL, 0, apiclient.StaticToken("token"), nil, log)
	require.NoError(t, err)
	return client, log
}

func TestCampaignRepository_GetAll(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/campaigns",
		body: `{"data":{"campaigns":[
			{"id":7,"name":"Spring","description":"Launch","startDate":"2025-01-01","endDate":"2025-01-31T00:00:00Z","contacts":[{"id":"c1"},{"id":2}]}
		],"pagination":{"total":1}}}`,
		check: func(t *testing.T, r *http.Request, _ []byte) {
			assert.Equal(t, "spr", r.URL.Query().Get("search"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
		},
	})
	repo := NewCampaignRepository(client, log)

	campaigns, err := repo.GetAll(context.Background(), CampaignQuery{Search: "spr", Page: 1})
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "7", campaigns[0].ID)
	assert.Equal(t, []string{"c1", "2"}, campaigns[0].ContactIDs)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), campaigns[0].StartDate)
}

func TestDate_KeepsWrittenDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "bare date", input: `"2025-01-31"`, want: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "utc timestamp", input: `"2025-01-31T00:00:00Z"`, want: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "timestamp east of utc", input: `"2025-01-31T00:00:00+05:30"`, want: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "timestamp west of utc", input: `"2025-01-31T23:00:00-05:00"`, want: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`, want: time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.Time)
		})
	}

	out, err := json.Marshal(Date{Time: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-31"`, string(out))
}

func TestCampaignRepository_RejectsMalformedResponse(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/campaigns/9",
		body:   `{"id":"9","name":"No dates"}`,
	})
	repo := NewCampaignRepository(client, log)

	_, err := repo.GetByID(context.Background(), "9")
	require.Error(t, err)
	assert.True(t, domainErrors.IsType(err, domainErrors.BackendError))
	assert.Contains(t, err.Error(), "StartDate")
}

func TestCampaignRepository_Create(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodPost,
		path:   "/campaigns",
		status: http.StatusCreated,
		body:   `{"campaign":{"id":"c9","name":"Spring","startDate":"2025-01-01","endDate":"2025-01-31"}}`,
		check: func(t *testing.T, _ *http.Request, body []byte) {
			assert.Equal(t, "Spring", gjson.GetBytes(body, "name").String())
			assert.Equal(t, "2025-01-01T00:00:00Z", gjson.GetBytes(body, "startDate").String())
			assert.True(t, gjson.GetBytes(body, "contactIds").IsArray())
		},
	})
	repo := NewCampaignRepository(client, log)

	created, err := repo.Create(context.Background(), &domainCampaign.Form{
		Name:        "Spring",
		Description: "Launch posts",
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
}

func TestPostRepository_CreateWritesMetadata(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodPost,
		path:   "/campaigns/c1/posts",
		body:   `{"id":"p1","type":"pinterest","metadata":{"boardId":"b1","priority":3}}`,
		check: func(t *testing.T, _ *http.Request, body []byte) {
			assert.Equal(t, "PINTEREST", gjson.GetBytes(body, "type").String())
			assert.Equal(t, "b1", gjson.GetBytes(body, "metadata.boardId").String())
			assert.Equal(t, "https://example.com", gjson.GetBytes(body, "metadata.link").String())
			assert.False(t, gjson.GetBytes(body, "metadata.pageId").Exists())
			assert.Equal(t, "https://cdn.test/a.png", gjson.GetBytes(body, "mediaUrls.0").String())
		},
	})
	repo := NewPostRepository(client, log)

	post, err := repo.Create(context.Background(), &domainCampaign.Post{
		CampaignID:        "c1",
		Subject:           "Hello",
		Message:           "World",
		Type:              domainCampaign.Pinterest,
		MediaURLs:         []string{"https://cdn.test/a.png"},
		ScheduledPostTime: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		Metadata: map[string]string{
			domainCampaign.MetaBoardID: "b1",
			domainCampaign.MetaLink:    "https://example.com",
			domainCampaign.MetaPageID:  "",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "c1", post.CampaignID)
	assert.Equal(t, domainCampaign.Pinterest, post.Type)
	assert.Equal(t, "3", post.Metadata["priority"])
}

func TestPostBody_EscapesMetadataKeys(t *testing.T) {
	body, err := postBody(&domainCampaign.Post{Type: domainCampaign.Email, Metadata: map[string]string{"a.b": "x"}})
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, map[string]interface{}{"a.b": "x"}, decoded["metadata"])
}

func TestPostRepository_GetScheduled(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/scheduled-posts",
		body: `[{"id":1,"campaignId":4,"campaign":{"name":"Spring"},"type":"facebook","scheduledPostTime":"2025-01-15T10:00:00Z"},
			{"id":2,"campaignName":"Summer","type":"EMAIL","scheduledPostTime":null}]`,
	})
	repo := NewPostRepository(client, log)

	posts, err := repo.GetScheduled(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Spring", posts[0].CampaignName)
	assert.Equal(t, domainCampaign.Facebook, posts[0].Type)
	assert.Equal(t, "Summer", posts[1].CampaignName)
	assert.True(t, posts[1].ScheduledPostTime.IsZero())
}

func TestPostRepository_UpdateWithoutID(t *testing.T) {
	client, log := newBackend(t)
	repo := NewPostRepository(client, log)
	_, err := repo.Update(context.Background(), &domainCampaign.Post{CampaignID: "c1"})
	assert.True(t, domainErrors.IsType(err, domainErrors.NotFound))
}

func TestSocialRepository_GetStatus(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/user/social-status",
		body:   `{"facebook":{"connected":false},"instagram":{"isConnected":true,"username":"shop"},"linkedin":true,"unknown":true}`,
	})
	repo := NewSocialRepository(client, log)

	status, err := repo.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsConnected(domainCampaign.Facebook))
	assert.True(t, status.IsConnected(domainCampaign.Instagram))
	assert.Equal(t, "shop", status[domainCampaign.Instagram].Name)
	assert.True(t, status.IsConnected(domainCampaign.LinkedIn))
	assert.False(t, status.IsConnected(domainCampaign.YouTube))
	assert.True(t, status.IsConnected(domainCampaign.Email))
	assert.Len(t, status, len(domainCampaign.AllPlatforms))
}

func TestSocialRepository_AuthURLAndDisconnect(t *testing.T) {
	client, log := newBackend(t,
		route{
			method: http.MethodGet,
			path:   "/socialmedia/auth-url",
			body:   `{"authUrl":"https://facebook.com/dialog/oauth?x=1"}`,
			check: func(t *testing.T, r *http.Request, _ []byte) {
				assert.Equal(t, "FACEBOOK", r.URL.Query().Get("platform"))
			},
		},
		route{
			method: http.MethodPost,
			path:   "/socialmedia/disconnect",
			body:   `{"success":true}`,
			check: func(t *testing.T, _ *http.Request, body []byte) {
				assert.Equal(t, "FACEBOOK", gjson.GetBytes(body, "platform").String())
			},
		},
	)
	repo := NewSocialRepository(client, log)

	authURL, err := repo.GetAuthURL(context.Background(), domainCampaign.Facebook)
	require.NoError(t, err)
	assert.Equal(t, "https://facebook.com/dialog/oauth?x=1", authURL)

	require.NoError(t, repo.Disconnect(context.Background(), domainCampaign.Facebook))
	assert.True(t, domainErrors.IsType(repo.Disconnect(context.Background(), domainCampaign.SMS), domainErrors.DomainRuleViolation))
}

func TestBillingRepository_NoSubscription(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/subscription/current",
		status: http.StatusNotFound,
		body:   `{"message":"No active subscription"}`,
	})
	repo := NewBillingRepository(client, log)

	sub, err := repo.GetCurrentSubscription(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestBillingRepository_CancelAndSubscription(t *testing.T) {
	client, log := newBackend(t,
		route{
			method: http.MethodGet,
			path:   "/subscription/current",
			body:   `{"subscription":{"id":"s1","status":"active","autoRenew":true,"plan":{"id":"p","name":"Pro"}}}`,
		},
		route{
			method: http.MethodPost,
			path:   "/subscription/cancel",
			body:   `{}`,
			check: func(t *testing.T, _ *http.Request, body []byte) {
				assert.True(t, gjson.GetBytes(body, "cancelImmediately").Bool())
			},
		},
	)
	repo := NewBillingRepository(client, log)

	sub, err := repo.GetCurrentSubscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pro", sub.PlanName)
	assert.True(t, sub.IsActive())

	yes := true
	require.NoError(t, repo.Cancel(context.Background(), &domainBilling.CancelForm{CancelImmediately: &yes}))
}

func TestNotificationRepository_GetPage(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/notifications",
		body:   `{"notifications":[{"id":1,"message":"a","isRead":false},{"id":2,"message":"b","isRead":true}],"total":12}`,
	})
	repo := NewNotificationRepository(client, log)

	page, err := repo.GetPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.UnreadCount)
	assert.Equal(t, 12, page.Total)
}

func TestAIRepository_GenerateContent(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodPost,
		path:   "/ai/generate-content",
		body:   `{"variations":[{"subject":"S1","content":"C1"},"plain text",{"subject":"","content":""}]}`,
		check: func(t *testing.T, _ *http.Request, body []byte) {
			assert.Equal(t, int64(3), gjson.GetBytes(body, "count").Int())
		},
	})
	repo := NewAIRepository(client, log)

	variations, err := repo.GenerateContent(context.Background(), &domainAI.TextRequest{Prompt: "sale", Platform: domainCampaign.Email, Count: 3})
	require.NoError(t, err)
	assert.Equal(t, []domainAI.Variation{{Subject: "S1", Content: "C1"}, {Content: "plain text"}}, variations)
}

func TestAIRepository_GenerateImage(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodPost,
		path:   "/ai/generate-image",
		body:   `{"data":{"images":[{"url":"https://img.test/1.png"},"https://img.test/2.png"]}}`,
	})
	repo := NewAIRepository(client, log)

	urls, err := repo.GenerateImage(context.Background(), &domainAI.ImageRequest{Prompt: "cat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/1.png", "https://img.test/2.png"}, urls)
}

func TestUploadRepository(t *testing.T) {
	var blobURL string
	client, log := newBackend(t,
		route{
			method: http.MethodPost,
			path:   "/upload",
			check: func(t *testing.T, _ *http.Request, body []byte) {
				assert.Equal(t, "a.png", gjson.GetBytes(body, "pathname").String())
			},
		},
		route{
			method: http.MethodPut,
			path:   "/blob/a.png",
			body:   `{"url":"https://cdn.test/a.png"}`,
			check: func(t *testing.T, r *http.Request, body []byte) {
				assert.Equal(t, "Bearer ct", r.Header.Get("Authorization"))
				assert.Equal(t, []byte{1, 2}, body)
			},
		},
	)
	blobURL = client.BaseURL() + "/blob/a.png"
	repo := NewUploadRepository(client, log)

	remote, err := repo.Put(context.Background(), &UploadTicket{ClientToken: "ct", UploadURL: blobURL}, "image/png", []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/a.png", remote)

	_, err = repo.RequestTicket(context.Background(), "a.png", "image/png", 2)
	assert.True(t, domainErrors.IsType(err, domainErrors.BackendError), "empty ticket must be rejected")
}

func TestContactRepository_Export(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodGet,
		path:   "/contacts/export",
		body:   "name,email\n",
	})
	repo := NewContactRepository(client, log)

	export, err := repo.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "name,email\n", string(export.Data))
}

func TestContactRepository_Update(t *testing.T) {
	client, log := newBackend(t, route{
		method: http.MethodPatch,
		path:   "/contacts/5",
		body:   `{"contact":{"id":5,"contactName":"Asha","email":"asha@example.com","campaignIds":[1]}}`,
	})
	repo := NewContactRepository(client, log)

	contact, err := repo.Update(context.Background(), "5", &domainContact.Form{Name: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", contact.Name)
	assert.Equal(t, []string{"1"}, contact.CampaignIDs)
}
