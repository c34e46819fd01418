// Package fetch issues live HTTP GET requests with an identifying client
// signature. It is the only package that talks to the network; callers go
// through the response cache rather than using it directly.
package fetch
