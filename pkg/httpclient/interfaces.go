package httpclient

import "context"

// Response is the part of an HTTP response the user repository inspects.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
}

// Client abstracts the outbound GET so the repository can run against stubs or a different transport.
type Client interface {
	Get(ctx context.Context, url string) (Response, error)
}
