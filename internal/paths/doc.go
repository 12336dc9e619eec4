// Package paths resolves hubtty's on-disk file locations.
//
// The primary configuration file lives under the XDG config home
// ([DefaultConfigPath]), with a legacy dotfile fallback in the home
// directory ([FallbackConfigPath]). The credential store shares the XDG
// directory ([DefaultAuthPath]).
//
// [ExpandUser] performs shell-style tilde expansion for user-supplied
// paths such as git-root, log-file and socket settings.
package paths
