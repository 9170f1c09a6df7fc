// Package messagequeue paces outgoing bot messages through a priority queue
// served by a fixed pool of workers.
package messagequeue

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
)

// DefaultPriority is the priority of jobs queued through SendMessage.
const DefaultPriority uint16 = 100

// Sender delivers one MarkdownV2 message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) (yatgbot.Reply, yaerrors.Error)
}

// Dispatcher handles message sending with priority and concurrency control.
// Each worker sends at most one message per interval.
type Dispatcher struct {
	sender              Sender
	interval            time.Duration
	messageQueueChannel chan MessageJob
	heap                messageHeap
	cond                *sync.Cond
	lastID              uint64
	closed              bool
	done                chan struct{}
	log                 yalogger.Logger
}

// NewDispatcher starts workerCount workers sending through sender. The queue
// closes when ctx is done; queued jobs are then dropped and their callers get
// ErrQueueClosed.
//
// Example usage:
//
//	queue := messagequeue.NewDispatcher(ctx, sender, 4, time.Second, log)
//	reply, err := queue.SendMessage(ctx, chatID, "hi")
func NewDispatcher(
	ctx context.Context,
	sender Sender,
	workerCount uint,
	interval time.Duration,
	log yalogger.Logger,
) *Dispatcher {
	if log == nil {
		log = yalogger.NewBaseLogger(nil).NewLogger()
	}

	dispatcher := &Dispatcher{
		sender:              sender,
		interval:            interval,
		messageQueueChannel: make(chan MessageJob),
		cond:                sync.NewCond(&sync.Mutex{}),
		done:                make(chan struct{}),
		log:                 log,
	}

	go dispatcher.closeOnDone(ctx)
	go dispatcher.processMessagesQueue(ctx)

	for i := range workerCount {
		go dispatcher.worker(ctx, i)
	}

	return dispatcher
}

// AddSendMessageJob queues a message and returns the job id with a channel that
// receives exactly one JobResult.
func (d *Dispatcher) AddSendMessageJob(chatID int64, text string, priority uint16) (uint64, <-chan JobResult) {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	if d.closed {
		return 0, returnErrorJobResult(yaerrors.FromError(
			http.StatusServiceUnavailable,
			ErrQueueClosed,
			"[MESSAGEQUEUE] failed to add job",
		))
	}

	d.lastID++

	job := MessageJob{
		ID:        d.lastID,
		Priority:  priority,
		Timestamp: time.Now(),
		ChatID:    chatID,
		Text:      text,
		ResultCh:  make(chan JobResult, 1),
	}

	d.heap.push(job)
	d.cond.Signal()

	return job.ID, job.ResultCh
}

// SendMessage queues a message with DefaultPriority and waits for its result.
// A job still queued when ctx is done is removed.
func (d *Dispatcher) SendMessage(ctx context.Context, chatID int64, text string) (yatgbot.Reply, yaerrors.Error) {
	id, resultCh := d.AddSendMessageJob(chatID, text, DefaultPriority)

	select {
	case result := <-resultCh:
		return result.Reply, result.Err
	case <-ctx.Done():
		d.DeleteJob(id)

		return nil, yaerrors.FromError(
			http.StatusRequestTimeout,
			errors.Join(ErrJobCanceled, ctx.Err()),
			"[MESSAGEQUEUE] failed to wait for job",
		)
	case <-d.done:
		return nil, yaerrors.FromError(
			http.StatusServiceUnavailable,
			ErrQueueClosed,
			"[MESSAGEQUEUE] failed to wait for job",
		)
	}
}

// DeleteJob removes a queued job. It reports false once a worker has taken it.
func (d *Dispatcher) DeleteJob(id uint64) bool {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	return d.heap.delete(id)
}

// Len returns the number of jobs waiting for a worker.
func (d *Dispatcher) Len() int {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	return d.heap.Len()
}

func (d *Dispatcher) closeOnDone(ctx context.Context) {
	<-ctx.Done()

	d.cond.L.Lock()
	d.closed = true
	d.cond.L.Unlock()

	d.cond.Broadcast()
	close(d.done)
}

// processMessagesQueue moves jobs from the heap to the workers in priority order.
func (d *Dispatcher) processMessagesQueue(ctx context.Context) {
	for {
		d.cond.L.Lock()

		for d.heap.Len() == 0 && !d.closed {
			d.cond.Wait()
		}

		if d.closed {
			d.cond.L.Unlock()

			return
		}

		job, ok := d.heap.pop()
		d.cond.L.Unlock()

		if !ok {
			continue
		}

		select {
		case d.messageQueueChannel <- job:
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) worker(ctx context.Context, id uint) {
	log := d.log.WithField("worker", id)

	for {
		select {
		case job := <-d.messageQueueChannel:
			start := time.Now()

			reply, err := d.sender.SendMessage(ctx, job.ChatID, job.Text)
			if err != nil {
				log.Warnf("Job %d to chat %d failed: %v", job.ID, job.ChatID, err)
			}

			job.ResultCh <- JobResult{Reply: reply, Err: err}

			if wait := d.interval - time.Since(start); wait > 0 {
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// returnErrorJobResult creates a closed channel holding one JobResult with err.
func returnErrorJobResult(err yaerrors.Error) <-chan JobResult {
	ch := make(chan JobResult, 1)
	ch <- JobResult{Err: err}

	close(ch)

	return ch
}
