// Package docbridge orchestrates URLs, tokens, and byte transfer between an
// external document-editing server and an object store.
//
// It issues signed editor configurations (Builder), interprets the editor's
// lifecycle callbacks (CallbackHandler), and persists saved documents
// (Saver). The service itself is stateless: everything a callback needs
// travels in the callback URL's query parameters, so instances scale
// horizontally without coordination. Storage backends, token signing, and
// transport live in subpackages.
package docbridge
