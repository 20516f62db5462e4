// Package services implements the song search and playlist creation operations of hrvxo-music.
//
// # Facade
//
// [Facade] validates input, obtains the shared YouTube Music client through a [MusicProvider],
// calls it, and normalizes the result. Every failure is returned as an [*Error] whose [Kind]
// tells the HTTP layer how to answer:
//   - [Validation] : caller input is unusable; no client call was made
//   - [Credential] : no usable credentials
//   - [Upstream] : YouTube Music failed or returned something unusable
//
// # Normalization
//
// Search rows from the client carry optional fields. [Normalize] turns each into a
// [SearchResult] or fails the whole batch: a result is never partially normalized.
//
// # Remote API
//
// [APIService] talks to a running hrvxo-music server and implements [Backend] as well, so CLI
// commands work the same against a local [Facade] or a remote instance.
package services
