package weavetest

import "github.com/iov-one/jointbank"

// calls counts the Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int {
	return c.check
}

func (c *calls) DeliverCallCount() int {
	return c.deliver
}

// CallCount returns the number of Check and Deliver calls together.
func (c *calls) CallCount() int {
	return c.check + c.deliver
}

// Handler is a jointbank.Handler mock. It returns CheckErr or DeliverErr
// when set, a copy of CheckResult or DeliverResult otherwise. Every call is
// counted, failed ones included.
type Handler struct {
	calls

	CheckResult jointbank.CheckResult
	CheckErr    error

	DeliverResult jointbank.DeliverResult
	DeliverErr    error
}

var _ jointbank.Handler = (*Handler)(nil)

func (h *Handler) Check(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler sets Key to Value in the store and then fails with Err, if
// set. Use it to check that a failed call leaves no trace.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ jointbank.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ jointbank.Context, db jointbank.KVStore, _ jointbank.Tx) (*jointbank.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(_ jointbank.Context, db jointbank.KVStore, _ jointbank.Tx) (*jointbank.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &jointbank.DeliverResult{}, h.Err
}
