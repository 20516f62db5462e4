// package credentials resolves YouTube Music credentials into a shared [ytmusic.Client].
//
// Sources are consulted in priority order the first time a client is needed:
//
//  1. YTMUSIC_OAUTH_B64: base64 of the OAuth JSON, written to <tmp>/ytmusic_oauth.json
//  2. YTMUSIC_OAUTH_JSON: the OAuth JSON itself, written to a fresh <tmp>/ytmusic_oauth_<uuid>.json
//  3. a local oauth.json file
//
// A [Resolver] caches the first client it builds. Failures are returned to the caller and
// retried on the next call.
package credentials
