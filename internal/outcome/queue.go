package outcome

// RequestKind tags a queued scheduler request.
type RequestKind uint8

const (
	RequestBattle RequestKind = iota
	RequestRewards
	RequestAccountRewards
	RequestNotice
)

// Request is one queued scheduler call.
type Request struct {
	Kind   RequestKind
	Battle *BattleRequest
	Reward *RewardRequest
	Notice *Notice
}

// Queue is a Scheduler that buffers requests for the host to drain in order.
type Queue struct {
	items []Request
}

// NewQueue creates an empty queue.
func NewQueue() *Queue { return &Queue{} }

func (q *Queue) StartBattle(b BattleRequest) {
	q.items = append(q.items, Request{Kind: RequestBattle, Battle: &b})
}

func (q *Queue) OpenRewards(r RewardRequest) {
	q.items = append(q.items, Request{Kind: RequestRewards, Reward: &r})
}

func (q *Queue) OpenAccountRewards(r RewardRequest) {
	q.items = append(q.items, Request{Kind: RequestAccountRewards, Reward: &r})
}

func (q *Queue) ShowNotice(n Notice) {
	q.items = append(q.items, Request{Kind: RequestNotice, Notice: &n})
}

// Len returns the number of pending requests.
func (q *Queue) Len() int { return len(q.items) }

// Drain returns and clears all pending requests.
func (q *Queue) Drain() []Request {
	out := q.items
	q.items = nil
	return out
}
