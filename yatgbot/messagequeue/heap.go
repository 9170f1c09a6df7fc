package messagequeue

import (
	"container/heap"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
)

// MessageJob is one queued message. Lower Priority values are sent first, equal
// priorities in arrival order.
type MessageJob struct {
	ID        uint64
	Priority  uint16
	Timestamp time.Time
	ChatID    int64
	Text      string
	ResultCh  chan JobResult
}

// JobResult is what the Sender answered for a job.
type JobResult struct {
	Reply yatgbot.Reply
	Err   yaerrors.Error
}

type messageHeap []MessageJob

func (h messageHeap) Len() int { return len(h) }

func (h messageHeap) Less(i int, j int) bool {
	if h[i].Priority == h[j].Priority {
		return h[i].ID < h[j].ID
	}

	return h[i].Priority < h[j].Priority
}

func (h messageHeap) Swap(i int, j int) { h[i], h[j] = h[j], h[i] }

func (h *messageHeap) Push(x any) {
	job, ok := x.(MessageJob)
	if !ok {
		return
	}

	*h = append(*h, job)
}

func (h *messageHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

func (h *messageHeap) push(job MessageJob) {
	heap.Push(h, job)
}

func (h *messageHeap) pop() (MessageJob, bool) {
	if h.Len() == 0 {
		return MessageJob{}, false
	}

	job, ok := heap.Pop(h).(MessageJob)

	return job, ok
}

func (h *messageHeap) delete(id uint64) bool {
	for i := range *h {
		if (*h)[i].ID == id {
			heap.Remove(h, i)

			return true
		}
	}

	return false
}
