package helper

import (
	"strings"
	"testing"
	"time"

	domainBilling "go-campzeo-client/src/domain/billing"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainContact "go-campzeo-client/src/domain/contact"
	domainErrors "go-campzeo-client/src/domain/errors"
	domainUser "go-campzeo-client/src/domain/user"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

func newTestValidator() Validator {
	return NewValidator(logger.NewNopLogger(), WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ValidationError, appErr.Type)
	out := map[string]string{}
	for _, f := range appErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func validContact() domainContact.Form {
	return domainContact.Form{
		Name:     "Asha",
		Email:    "asha@example.com",
		Mobile:   "9876543210",
		WhatsApp: "9876543210",
	}
}

func TestContactForm_Mobile(t *testing.T) {
	v := newTestValidator()

	form := validContact()
	assert.NoError(t, v.Struct(&form))

	form.Mobile = "1234567890"
	fields := fieldErrors(t, v.Struct(&form))
	assert.Contains(t, fields, "mobile")
	assert.NotContains(t, fields, "name")

	form.Mobile = "98765"
	fields = fieldErrors(t, v.Struct(&form))
	assert.Contains(t, fields, "mobile")
}

func TestContactForm_Name(t *testing.T) {
	v := newTestValidator()
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "three letters is the minimum", value: "Ann", wantErr: false},
		{name: "two letters", value: "Al", wantErr: true},
		{name: "digits are rejected", value: "John2", wantErr: true},
		{name: "spaces between words", value: "Mary Jane", wantErr: false},
		{name: "thirty one letters", value: strings.Repeat("a", 31), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validContact()
			form.Name = tt.value
			err := v.Struct(&form)
			if tt.wantErr {
				assert.Contains(t, fieldErrors(t, err), "name")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestContactForm_Email(t *testing.T) {
	v := newTestValidator()
	form := validContact()
	form.Email = "not-an-email"
	fields := fieldErrors(t, v.Struct(&form))
	assert.Equal(t, "Enter a valid email address", fields["email"])
}

func TestCampaignForm_Dates(t *testing.T) {
	v := newTestValidator()
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	base := domainCampaign.Form{
		Name:        "Spring launch",
		Description: "Launch posts",
		StartDate:   today,
		EndDate:     today,
	}

	t.Run("end equal to start passes", func(t *testing.T) {
		form := base
		assert.NoError(t, v.Struct(&form))
	})

	t.Run("start yesterday fails with past date", func(t *testing.T) {
		form := base
		form.StartDate = today.AddDate(0, 0, -1)
		fields := fieldErrors(t, v.Struct(&form))
		assert.Contains(t, fields["startDate"], "past date")
	})

	t.Run("end before start fails", func(t *testing.T) {
		form := base
		form.StartDate = today.AddDate(0, 0, 5)
		form.EndDate = today.AddDate(0, 0, 4)
		fields := fieldErrors(t, v.Struct(&form))
		assert.Equal(t, "End date cannot be earlier than start date", fields["endDate"])
	})

	t.Run("short name and description", func(t *testing.T) {
		form := base
		form.Name = "ab"
		form.Description = "abcd"
		fields := fieldErrors(t, v.Struct(&form))
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "description")
	})
}

func TestCampaignForm_StartDateWestOfUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	// 03:00 UTC on the 10th is still the evening of the 9th in EST
	v := NewValidator(logger.NewNopLogger(),
		WithClock(func() time.Time { return time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC) }),
		WithLocation(est))

	form := domainCampaign.Form{
		Name:        "Spring launch",
		Description: "Launch posts",
		StartDate:   time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, v.Struct(&form))

	form.StartDate = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	fields := fieldErrors(t, v.Struct(&form))
	assert.Contains(t, fields["startDate"], "past date")
}

func TestCancelForm(t *testing.T) {
	v := newTestValidator()
	yes := true
	no := false

	fields := fieldErrors(t, v.Struct(&domainBilling.CancelForm{CancelImmediately: nil, Reason: "too expensive"}))
	assert.Contains(t, fields, "cancelImmediately")

	fields = fieldErrors(t, v.Struct(&domainBilling.CancelForm{CancelImmediately: nil}))
	assert.Contains(t, fields, "cancelImmediately")

	assert.NoError(t, v.Struct(&domainBilling.CancelForm{CancelImmediately: &yes, Reason: ""}))
	assert.NoError(t, v.Struct(&domainBilling.CancelForm{CancelImmediately: &no, Reason: "switching"}))
}

func TestProfileForm_OptionalMobile(t *testing.T) {
	v := newTestValidator()
	assert.NoError(t, v.Struct(&domainUser.ProfileForm{Name: "Ravi", Email: "ravi@example.com"}))

	fields := fieldErrors(t, v.Struct(&domainUser.ProfileForm{Name: "Ravi", Email: "ravi@example.com", Mobile: "5123456789"}))
	assert.Contains(t, fields, "mobile")
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Start date", humanize("startDate"))
	assert.Equal(t, "Start date", humanize("StartDate"))
	assert.Equal(t, "Name", humanize("name"))
}
