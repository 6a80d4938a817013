package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	domainAI "go-campzeo-client/src/domain/ai"
	"go-campzeo-client/src/domain/alert"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/media"
	"go-campzeo-client/src/infrastructure/repository/backend"
	"go-campzeo-client/src/infrastructure/uploader"

	uuid "github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// StartRequest opens a session for a new post, or for an existing one when PostID is set
type StartRequest struct {
	CampaignID string
	PostID     string
	Platform   domainCampaign.PlatformType
}

// Edit carries the fields to change; nil fields are left alone and an empty
// metadata value removes the key.
type Edit struct {
	Subject           *string
	Message           *string
	ScheduledPostTime *time.Time
	Metadata          map[string]string
}

// IComposerUseCase drives post composition sessions
type IComposerUseCase interface {
	Start(ctx context.Context, req StartRequest) (*View, error)
	Get(sessionID string) (*View, error)
	SelectPlatform(ctx context.Context, sessionID string, platform domainCampaign.PlatformType) (*View, error)
	Edit(sessionID string, edit Edit) (*View, error)
	GenerateText(ctx context.Context, sessionID string, prompt string) (*View, error)
	SelectVariation(sessionID string, index int) (*View, error)
	DiscardVariations(sessionID string) (*View, error)
	GenerateImage(ctx context.Context, sessionID string, prompt string) (*View, error)
	AttachPath(ctx context.Context, sessionID string, relPath string) (*View, error)
	AttachUpload(ctx context.Context, sessionID string, name string, r io.Reader) (*View, error)
	RemoveAttachment(sessionID string, attachmentID string) (*View, error)
	DismissAlerts(sessionID string) (*View, error)
	Submit(ctx context.Context, sessionID string) (*domainCampaign.Post, error)
	Discard(sessionID string) error
}

// Option tweaks the use case, mostly for tests
type Option func(*ComposerUseCase)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *ComposerUseCase) { c.now = now }
}

// WithLocation sets the location campaign days are evaluated in
func WithLocation(loc *time.Location) Option {
	return func(c *ComposerUseCase) { c.location = loc }
}

type ComposerUseCase struct {
	campaignRepository backend.CampaignRepositoryInterface
	postRepository     backend.PostRepositoryInterface
	socialRepository   backend.SocialRepositoryInterface
	aiRepository       backend.AIRepositoryInterface
	library            media.ILibrary
	uploader           uploader.IUploader
	Logger             *logger.Logger

	now      func() time.Time
	location *time.Location

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewComposerUseCase(
	campaignRepository backend.CampaignRepositoryInterface,
	postRepository backend.PostRepositoryInterface,
	socialRepository backend.SocialRepositoryInterface,
	aiRepository backend.AIRepositoryInterface,
	library media.ILibrary,
	uploads uploader.IUploader,
	loggerInstance *logger.Logger,
	opts ...Option,
) IComposerUseCase {
	c := &ComposerUseCase{
		campaignRepository: campaignRepository,
		postRepository:     postRepository,
		socialRepository:   socialRepository,
		aiRepository:       aiRepository,
		library:            library,
		uploader:           uploads,
		Logger:             loggerInstance,
		now:                time.Now,
		location:           time.Local,
		sessions:           map[string]*Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ComposerUseCase) Start(ctx context.Context, req StartRequest) (*View, error) {
	if req.CampaignID == "" {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "campaignId", Message: "Campaign is required"}})
	}
	campaign, err := c.campaignRepository.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	s := &Session{
		id:        id.String(),
		campaign:  *campaign,
		metadata:  map[string]string{},
		state:     StateEditing,
		createdAt: c.now(),
	}

	if req.PostID != "" {
		post, err := c.postRepository.GetByID(ctx, req.CampaignID, req.PostID)
		if err != nil {
			return nil, err
		}
		c.prefill(s, post)
	}

	// the session is stored only once its platform passes gating
	if req.Platform != "" && !s.platformLocked {
		if err := validatePlatform(req.Platform); err != nil {
			return nil, err
		}
		if err := c.checkConnected(ctx, s, req.Platform); err != nil {
			return nil, err
		}
		s.platform = req.Platform
	}

	c.mu.Lock()
	c.sessions[s.id] = s
	c.mu.Unlock()
	c.Logger.Info("Composition session started",
		zap.String("sessionID", s.id),
		zap.String("campaignID", req.CampaignID),
		zap.String("postID", req.PostID),
		zap.String("platform", string(s.platform)))
	return c.Get(s.id)
}

func validatePlatform(platform domainCampaign.PlatformType) error {
	if _, ok := domainCampaign.ParsePlatform(string(platform)); !ok {
		return domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "platform", Message: "Choose a supported platform"}})
	}
	return nil
}

// prefill loads an existing post; its platform can no longer change
func (c *ComposerUseCase) prefill(s *Session, post *domainCampaign.Post) {
	s.postID = post.ID
	s.platform = post.Type
	s.platformLocked = true
	s.subject = post.Subject
	s.message = post.Message
	s.scheduledAt = post.ScheduledPostTime
	for k, v := range post.Metadata {
		s.metadata[k] = v
	}
	for _, mediaURL := range post.MediaURLs {
		s.attachments = append(s.attachments, &attachmentEntry{
			attachment: c.remoteAttachment(mediaURL, ""),
			settled:    true,
		})
	}
}

func (c *ComposerUseCase) remoteAttachment(mediaURL string, kind string) domainCampaign.Attachment {
	id, _ := uuid.NewV4()
	name := mediaURL
	if parsed, err := url.Parse(mediaURL); err == nil && parsed.Path != "" {
		name = path.Base(parsed.Path)
	}
	return domainCampaign.Attachment{
		ID:     id.String(),
		URI:    mediaURL,
		Name:   name,
		Kind:   kind,
		Remote: true,
	}
}

func (c *ComposerUseCase) session(id string) (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, domainErrors.NewAppError(errors.New("composition session not found"), domainErrors.NotFound)
	}
	return s, nil
}

func (c *ComposerUseCase) Get(sessionID string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (c *ComposerUseCase) SelectPlatform(ctx context.Context, sessionID string, platform domainCampaign.PlatformType) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := validatePlatform(platform); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.platformLocked && s.platform != platform {
		err := domainErrors.NewDomainRuleViolation("the platform of an existing post cannot be changed")
		s.raise(err, c.now())
		s.mu.Unlock()
		return nil, err
	}
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	s.mu.Unlock()

	if err := c.checkConnected(ctx, s, platform); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a submit may have started while the status lookup was in flight
	if s.state == StateSubmitting {
		c.Logger.Warn("Platform change rejected, submit in progress", zap.String("sessionID", sessionID))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	s.platform = platform
	c.Logger.Info("Platform selected", zap.String("sessionID", sessionID), zap.String("platform", string(platform)))
	return s.view(), nil
}

// checkConnected blocks platforms whose social account is not linked. SMS,
// EMAIL and WHATSAPP are never blocked and need no status lookup.
func (c *ComposerUseCase) checkConnected(ctx context.Context, s *Session, platform domainCampaign.PlatformType) error {
	if platform.IsVirtual() {
		return nil
	}
	status, err := c.socialRepository.GetStatus(ctx)
	if err != nil {
		c.raiseLocked(s, err)
		return err
	}
	if !status.IsConnected(platform) {
		err := domainErrors.NewMissingDependency(
			fmt.Sprintf("%s is not connected. Connect your %s account before creating a post for it.", platform, platform),
			alert.ScreenAccounts,
		)
		c.Logger.Warn("Platform not connected", zap.String("sessionID", s.id), zap.String("platform", string(platform)))
		c.raiseLocked(s, err)
		return err
	}
	return nil
}

func (c *ComposerUseCase) raiseLocked(s *Session, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raise(err, c.now())
}

func (c *ComposerUseCase) Edit(sessionID string, edit Edit) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	if edit.Subject != nil {
		s.subject = *edit.Subject
	}
	if edit.Message != nil {
		s.message = *edit.Message
	}
	if edit.ScheduledPostTime != nil {
		s.scheduledAt = *edit.ScheduledPostTime
	}
	for key, value := range edit.Metadata {
		if value == "" {
			delete(s.metadata, key)
			continue
		}
		s.metadata[key] = value
	}
	return s.view(), nil
}

// GenerateText asks for MaxVariations suggestions and keeps at most that many.
// Only one generation request may be in flight per session.
func (c *ComposerUseCase) GenerateText(ctx context.Context, sessionID string, prompt string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "prompt", Message: "Describe what the post should say"}})
	}
	platform, err := c.enter(s, StateAwaitingAIText)
	if err != nil {
		return nil, err
	}

	variations, err := c.aiRepository.GenerateContent(ctx, &domainAI.TextRequest{
		Prompt:   prompt,
		Platform: platform,
		Count:    domainAI.MaxVariations,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	if err != nil {
		s.raise(err, c.now())
		return nil, err
	}
	if len(variations) > domainAI.MaxVariations {
		variations = variations[:domainAI.MaxVariations]
	}
	s.variations = variations
	c.Logger.Info("AI variations ready", zap.String("sessionID", sessionID), zap.Int("count", len(variations)))
	return s.view(), nil
}

// enter moves an editing session into an in-flight state
func (c *ComposerUseCase) enter(s *Session, state State) (domainCampaign.PlatformType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy() {
		c.Logger.Warn("Request rejected, session busy", zap.String("sessionID", s.id), zap.String("state", string(s.state)))
		return "", domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	s.state = state
	return s.platform, nil
}

func (c *ComposerUseCase) SelectVariation(sessionID string, index int) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.variations) {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "index", Message: "Choose one of the suggestions"}})
	}
	chosen := s.variations[index]
	if chosen.Subject != "" {
		s.subject = chosen.Subject
	}
	s.message = chosen.Content
	s.variations = nil
	return s.view(), nil
}

func (c *ComposerUseCase) DiscardVariations(sessionID string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variations = nil
	return s.view(), nil
}

// GenerateImage attaches the first generated image; further images are ignored
func (c *ComposerUseCase) GenerateImage(ctx context.Context, sessionID string, prompt string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "prompt", Message: "Describe the image"}})
	}
	platform, err := c.enter(s, StateAwaitingAIImage)
	if err != nil {
		return nil, err
	}

	urls, err := c.aiRepository.GenerateImage(ctx, &domainAI.ImageRequest{Prompt: prompt, Platform: platform})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	if err != nil {
		s.raise(err, c.now())
		return nil, err
	}
	if len(urls) == 0 {
		err := domainErrors.NewAppError(errors.New("no image was generated"), domainErrors.BackendError)
		s.raise(err, c.now())
		return nil, err
	}
	s.aiImageURL = urls[0]
	s.attachments = append(s.attachments, &attachmentEntry{
		attachment: c.remoteAttachment(urls[0], media.KindImage),
		settled:    true,
	})
	c.Logger.Info("AI image attached", zap.String("sessionID", sessionID))
	return s.view(), nil
}

func (c *ComposerUseCase) AttachPath(ctx context.Context, sessionID string, relPath string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	file, err := c.library.Open(relPath)
	if err != nil {
		return nil, err
	}
	return c.attach(ctx, s, file)
}

func (c *ComposerUseCase) AttachUpload(ctx context.Context, sessionID string, name string, r io.Reader) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	file, err := c.library.Stage(name, r)
	if err != nil {
		return nil, err
	}
	return c.attach(ctx, s, file)
}

// attach shows the file immediately under its local URI and uploads it in
// the background; the URI is swapped for the remote URL once stored.
func (c *ComposerUseCase) attach(ctx context.Context, s *Session, file *media.File) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		c.library.Release(file)
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	if s.hasDigest(file.Digest) {
		c.Logger.Info("Attachment already added", zap.String("sessionID", s.id), zap.String("name", file.Name))
		c.library.Release(file)
		return s.view(), nil
	}

	handle, err := c.uploader.Enqueue(ctx, file)
	if err != nil {
		c.library.Release(file)
		s.raise(err, c.now())
		return nil, err
	}

	id, _ := uuid.NewV4()
	entry := &attachmentEntry{
		attachment: domainCampaign.Attachment{
			ID:        id.String(),
			URI:       file.URI(),
			Name:      file.Name,
			MimeType:  file.MimeType,
			Kind:      file.Kind,
			Uploading: true,
			Digest:    file.Digest,
		},
		upload: handle,
	}
	s.attachments = append(s.attachments, entry)
	go c.watch(s, entry)
	return s.view(), nil
}

func (c *ComposerUseCase) watch(s *Session, entry *attachmentEntry) {
	<-entry.upload.Done()
	remote, err := entry.upload.Wait(context.Background())
	_ = c.settle(s, entry, remote, err)
}

// settle applies an upload result once and returns the upload failure, if
// any. A failed upload removes the attachment and raises an alert; it is not
// retried.
func (c *ComposerUseCase) settle(s *Session, entry *attachmentEntry, remote string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.settled {
		return entry.failed
	}
	entry.settled = true
	idx := s.findAttachment(entry.attachment.ID)

	if err != nil {
		entry.failed = err
		c.Logger.Error("Attachment upload failed", zap.Error(err), zap.String("sessionID", s.id), zap.String("name", entry.attachment.Name))
		if idx >= 0 {
			s.attachments = append(s.attachments[:idx], s.attachments[idx+1:]...)
			s.raise(domainErrors.NewAppError(fmt.Errorf("couldn't upload %s: %w", entry.attachment.Name, err), domainErrors.BackendError), c.now())
		}
		return err
	}

	entry.attachment.URI = remote
	entry.attachment.Remote = true
	entry.attachment.Uploading = false
	return nil
}

func (c *ComposerUseCase) RemoveAttachment(sessionID string, attachmentID string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	idx := s.findAttachment(attachmentID)
	if idx < 0 {
		return nil, domainErrors.NewAppError(errors.New("attachment not found"), domainErrors.NotFound)
	}
	if s.attachments[idx].attachment.URI == s.aiImageURL {
		s.aiImageURL = ""
	}
	s.attachments = append(s.attachments[:idx], s.attachments[idx+1:]...)
	return s.view(), nil
}

func (c *ComposerUseCase) DismissAlerts(sessionID string) (*View, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = nil
	return s.view(), nil
}

// Submit validates the draft, waits for uploads still in flight (bounded by
// ctx), then creates the post or updates the existing one. A successful
// submit closes the session.
func (c *ComposerUseCase) Submit(ctx context.Context, sessionID string) (*domainCampaign.Post, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return nil, domainErrors.NewAppErrorWithType(domainErrors.Conflict)
	}
	if err := c.validateDraft(s); err != nil {
		if domainErrors.IsType(err, domainErrors.DomainRuleViolation) {
			s.raise(err, c.now())
		}
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateSubmitting
	platform := s.platform
	pending := s.pendingUploads()
	s.mu.Unlock()

	if err := c.checkConnected(ctx, s, platform); err != nil {
		return nil, c.backToEditing(s, err, false)
	}

	if len(pending) > 0 {
		c.Logger.Info("Waiting for uploads before submitting", zap.String("sessionID", sessionID), zap.Int("pending", len(pending)))
	}
	var failed []string
	for _, entry := range pending {
		remote, err := entry.upload.Wait(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, c.backToEditing(s, domainErrors.NewAppError(fmt.Errorf("attachments are still uploading: %w", ctx.Err()), domainErrors.Conflict), true)
		}
		if failure := c.settle(s, entry, remote, err); failure != nil {
			failed = append(failed, entry.attachment.Name)
		}
	}
	if len(failed) > 0 {
		err := domainErrors.NewDomainRuleViolation("upload failed for %s; review the attachments and submit again", strings.Join(failed, ", "))
		return nil, c.backToEditing(s, err, true)
	}

	s.mu.Lock()
	post := &domainCampaign.Post{
		ID:                s.postID,
		CampaignID:        s.campaign.ID,
		Subject:           s.subject,
		Message:           s.message,
		Type:              s.platform,
		MediaURLs:         s.mediaURLs(),
		ScheduledPostTime: s.scheduledAt,
		Metadata:          make(map[string]string, len(s.metadata)),
	}
	for _, key := range sortedKeys(s.metadata) {
		post.Metadata[key] = s.metadata[key]
	}
	s.mu.Unlock()

	var saved *domainCampaign.Post
	if post.ID != "" {
		saved, err = c.postRepository.Update(ctx, post)
	} else {
		saved, err = c.postRepository.Create(ctx, post)
	}
	if err != nil {
		return nil, c.backToEditing(s, err, true)
	}

	s.mu.Lock()
	s.variations = nil
	s.aiImageURL = ""
	s.mu.Unlock()

	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()

	c.Logger.Info("Post submitted",
		zap.String("sessionID", sessionID),
		zap.String("campaignID", saved.CampaignID),
		zap.String("postID", saved.ID),
		zap.String("platform", string(saved.Type)))
	return saved, nil
}

func (c *ComposerUseCase) backToEditing(s *Session, err error, raise bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	if raise {
		s.raise(err, c.now())
	}
	return err
}

// validateDraft must be called with s.mu held
func (c *ComposerUseCase) validateDraft(s *Session) error {
	var fields []domainErrors.FieldError
	if s.platform == "" {
		fields = append(fields, domainErrors.FieldError{Field: "platform", Message: "Platform is required"})
	}
	if strings.TrimSpace(s.subject) == "" {
		fields = append(fields, domainErrors.FieldError{Field: "subject", Message: "Subject is required"})
	}
	if strings.TrimSpace(s.message) == "" {
		fields = append(fields, domainErrors.FieldError{Field: "message", Message: "Message is required"})
	}
	if s.scheduledAt.IsZero() {
		fields = append(fields, domainErrors.FieldError{Field: "scheduledPostTime", Message: "Scheduled post time is required"})
	}
	if s.platform == domainCampaign.Email && strings.TrimSpace(s.metadata[domainCampaign.MetaSenderEmail]) == "" {
		fields = append(fields, domainErrors.FieldError{Field: domainCampaign.MetaSenderEmail, Message: "Sender email is required"})
	}
	if len(fields) > 0 {
		return domainErrors.NewValidationError(fields)
	}
	return CheckSchedule(&s.campaign, s.scheduledAt, c.location)
}

// CheckSchedule rejects times outside the campaign's date range or before
// the campaign was created
func CheckSchedule(campaign *domainCampaign.Campaign, scheduledAt time.Time, loc *time.Location) error {
	if !campaign.Contains(scheduledAt, loc) {
		return domainErrors.NewDomainRuleViolation("scheduled time must fall between %s and %s",
			campaign.StartDate.Format("02 Jan 2006"),
			campaign.EndDate.Format("02 Jan 2006"))
	}
	if !campaign.CreatedAt.IsZero() && scheduledAt.Before(campaign.CreatedAt) {
		return domainErrors.NewDomainRuleViolation("scheduled time cannot be earlier than the campaign's creation time")
	}
	return nil
}

func (c *ComposerUseCase) Discard(sessionID string) error {
	if _, err := c.session(sessionID); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()
	c.Logger.Info("Composition session discarded", zap.String("sessionID", sessionID))
	return nil
}
