package repository

// AppendExchangeOptions holds the parameters for appending one exchange.
type AppendExchangeOptions struct {
	ThreadID string
	Query    string
	Response string
	Emotion  string
}

// ListExchangesOptions holds the pagination parameters for listing a thread.
type ListExchangesOptions struct {
	ThreadID string
	Page     int // 1-based
	PageSize int
}
