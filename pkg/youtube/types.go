package youtube

// Resource is a simplified representation of an educational video result.
type Resource struct {
	VideoID     string
	Title       string
	Description string
	ChannelName string
	URL         string
}
