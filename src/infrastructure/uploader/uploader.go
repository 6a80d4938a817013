package uploader

import (
	"context"
	"errors"
	"sync"

	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/apiclient"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/media"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

// ErrShutdown is returned for uploads that never ran because the pool stopped
var ErrShutdown = errors.New("uploader is shutting down")

// Handle follows one queued upload
type Handle interface {
	Done() <-chan struct{}
	Wait(ctx context.Context) (string, error)
}

// IUploader runs attachment uploads in the background
type IUploader interface {
	Enqueue(ctx context.Context, file *media.File) (Handle, error)
	Shutdown()
}

// Pending is the handle of one queued upload
type Pending struct {
	file *media.File
	ctx  context.Context
	done chan struct{}
	url  string
	err  error
}

// Done is closed once the upload finished or failed
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the upload finishes or ctx ends
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.url, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Pending) finish(url string, err error) {
	p.url = url
	p.err = err
	close(p.done)
}

// Uploader handles attachment uploads using a worker pool
type Uploader struct {
	uploads     backend.UploadRepositoryInterface
	library     media.ILibrary
	Logger      *logger.Logger
	workerCount int
	queue       chan *Pending
	wg          sync.WaitGroup
	baseCtx     context.Context
	cancel      context.CancelFunc
	shutdown    chan struct{}
	closeOnce   sync.Once
	mu          sync.RWMutex
	closed      bool
}

// NewUploader creates an uploader with the specified number of workers
func NewUploader(
	uploads backend.UploadRepositoryInterface,
	library media.ILibrary,
	loggerInstance *logger.Logger,
	workerCount int,
	queueSize int,
) *Uploader {
	if workerCount <= 0 {
		workerCount = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	baseCtx, cancel := context.WithCancel(context.Background())

	u := &Uploader{
		uploads:     uploads,
		library:     library,
		Logger:      loggerInstance,
		workerCount: workerCount,
		queue:       make(chan *Pending, queueSize),
		baseCtx:     baseCtx,
		cancel:      cancel,
		shutdown:    make(chan struct{}),
	}
	u.startWorkers()
	return u
}

func (u *Uploader) startWorkers() {
	u.Logger.Info("Starting upload workers", zap.Int("workerCount", u.workerCount))
	for i := 0; i < u.workerCount; i++ {
		u.wg.Add(1)
		go u.worker(i)
	}
}

func (u *Uploader) worker(id int) {
	defer u.wg.Done()
	for {
		select {
		case job := <-u.queue:
			select {
			case <-u.shutdown:
				u.abandon(job)
				continue
			default:
			}
			u.process(job)
		case <-u.shutdown:
			u.Logger.Debug("Upload worker stopped", zap.Int("workerID", id))
			return
		}
	}
}

// Enqueue schedules an upload. The bearer token of ctx is carried over to the
// background request; cancelling ctx does not cancel the upload.
func (u *Uploader) Enqueue(ctx context.Context, file *media.File) (Handle, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.closed {
		return nil, domainErrors.NewAppError(ErrShutdown, domainErrors.UnknownError)
	}

	job := &Pending{
		file: file,
		ctx:  apiclient.WithToken(u.baseCtx, apiclient.TokenFromContext(ctx)),
		done: make(chan struct{}),
	}
	select {
	case u.queue <- job:
		u.Logger.Info("Upload queued", zap.String("name", file.Name), zap.Int("bytes", len(file.Data)))
		return job, nil
	default:
		u.Logger.Warn("Upload queue is full", zap.String("name", file.Name))
		return nil, domainErrors.NewAppError(errors.New("too many uploads in progress, try again shortly"), domainErrors.Conflict)
	}
}

func (u *Uploader) process(job *Pending) {
	file := job.file
	defer u.library.Release(file)

	ticket, err := u.uploads.RequestTicket(job.ctx, file.Name, file.MimeType, len(file.Data))
	if err != nil {
		u.Logger.Error("Couldn't obtain upload token", zap.Error(err), zap.String("name", file.Name))
		job.finish("", err)
		return
	}
	remote, err := u.uploads.Put(job.ctx, ticket, file.MimeType, file.Data)
	if err != nil {
		u.Logger.Error("Upload failed", zap.Error(err), zap.String("name", file.Name))
		job.finish("", err)
		return
	}
	u.Logger.Info("Upload completed", zap.String("name", file.Name), zap.String("url", remote))
	job.finish(remote, nil)
}

// Shutdown stops the workers, aborts running uploads and fails queued ones
func (u *Uploader) Shutdown() {
	u.closeOnce.Do(func() {
		u.Logger.Info("Shutting down uploader")

		u.mu.Lock()
		u.closed = true
		u.mu.Unlock()

		close(u.shutdown)
		u.cancel()
		u.wg.Wait()

		for {
			select {
			case job := <-u.queue:
				u.abandon(job)
			default:
				u.Logger.Info("Uploader shutdown complete")
				return
			}
		}
	})
}

func (u *Uploader) abandon(job *Pending) {
	u.library.Release(job.file)
	job.finish("", domainErrors.NewAppError(ErrShutdown, domainErrors.UnknownError))
}
