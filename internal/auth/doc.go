// Package auth provides the persistent credential cache and the token
// acquisition collaborator boundary.
//
// Tokens are cached per server name in a YAML file ([Store]) whose
// permission bits are forced to owner read/write after every write. A
// cache hit returns without touching the collaborator or the disk; a
// miss acquires a token through the configured [TokenSource], persists
// the whole mapping atomically, and returns it.
//
// Concurrent first runs against the same server are not coordinated:
// both processes may acquire a token and the last write wins.
package auth
