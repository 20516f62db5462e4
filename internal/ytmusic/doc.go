// Package ytmusic is a minimal YouTube Music client for the two operations the facade exposes:
// song search and playlist creation.
//
// # Authentication
//
// A [Client] is built from an OAuth credentials file in the format produced by ytmusicapi's
// `ytmusicapi oauth` command (or by [DeviceLogin]). The access token is attached to every request
// through an [oauth2.Transport]. When the file, or [Options], carries an OAuth client ID and secret
// the token is refreshed through Google's token endpoint as it expires; otherwise the stored token
// is used as-is until YouTube rejects it.
//
// # Transport
//
// Requests are InnerTube calls (POST https://music.youtube.com/youtubei/v1/{endpoint}) carrying
// the WEB_REMIX client context. Every call first waits on a [rate.Limiter] so a burst of facade
// traffic cannot hammer the upstream account.
//
// # Loosely-shaped results
//
// InnerTube rows are deeply nested renderers where any field may be missing. [SearchItem] keeps
// every field optional (pointer or nil slice); callers decide what is required.
//
// A Client is safe for concurrent use.
package ytmusic
