// Package webcam provides an embeddable net/http handler that serves
// rendered capture-widget fragments for progressive enhancement.
//
// The default handler responds to GET and HEAD requests, resolves the target
// profile, backend, and locale from query parameters (negotiating the locale
// against Accept-Language when a catalog is configured), and answers with a
// JSON envelope carrying the fragment, its runtime asset URLs, and the stable
// element identifiers client code binds to. Pass format=html to receive the
// raw fragment instead.
package webcam
