// Package pathspec classifies raw path strings into local or remote
// addresses. Resolution is a pure, total function: any string resolves to
// exactly one variant, and rejection of unusable paths happens later at
// dispatch time, not here.
package pathspec

import (
	"path"
	"path/filepath"
	"strings"
)

// Scheme is the sentinel token that marks a remote-qualified path.
// Wire format: "remote:<endpointName>:<remotePath>".
const Scheme = "remote"

// RootMarker denotes the root of a remote endpoint
const RootMarker = "."

const schemePrefix = Scheme + ":"

// Kind discriminates the ResolvedPath union
type Kind int

const (
	KindLocal Kind = iota
	KindRemote
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ResolvedPath is the tagged union produced by Resolve. Exactly one variant
// is populated, selected by Kind; every dispatch site must switch on Kind
// rather than sniffing the string shape again.
type ResolvedPath struct {
	Kind Kind

	// LocalPath is the normalized host-OS path (Kind == KindLocal)
	LocalPath string

	// Endpoint is the registry name; may be empty for a malformed remote
	// string, which the registry lookup then rejects (Kind == KindRemote)
	Endpoint string

	// RemotePath is relative-normalized: no empty segments, RootMarker
	// for the endpoint root (Kind == KindRemote)
	RemotePath string
}

// Resolve classifies a raw path string. It never fails: empty or invalid
// input resolves to Local("") and surfaces as an error from the backend
// call itself. A remote-scheme string with a missing endpoint name resolves
// to Remote with an empty Endpoint so the registry lookup reports it as an
// unknown endpoint instead of silently treating it as local.
func Resolve(raw string) ResolvedPath {
	if rest, ok := strings.CutPrefix(raw, schemePrefix); ok {
		name, remote, found := strings.Cut(rest, ":")
		if !found {
			remote = ""
		}
		return ResolvedPath{
			Kind:       KindRemote,
			Endpoint:   name,
			RemotePath: normalizeRemote(remote),
		}
	}

	return ResolvedPath{Kind: KindLocal, LocalPath: normalizeLocal(raw)}
}

// Remote builds a resolved remote path directly, normalizing the remote
// segment the same way Resolve does
func Remote(endpoint, remotePath string) ResolvedPath {
	return ResolvedPath{
		Kind:       KindRemote,
		Endpoint:   endpoint,
		RemotePath: normalizeRemote(remotePath),
	}
}

// Local builds a resolved local path directly
func Local(localPath string) ResolvedPath {
	return ResolvedPath{Kind: KindLocal, LocalPath: normalizeLocal(localPath)}
}

// String serializes back to the wire format. Resolve(p.String()) is stable:
// it yields a value equal to p for any p produced by Resolve.
func (p ResolvedPath) String() string {
	switch p.Kind {
	case KindRemote:
		return schemePrefix + p.Endpoint + ":" + p.RemotePath
	default:
		return p.LocalPath
	}
}

// Join appends a child name, staying within the same variant
func (p ResolvedPath) Join(name string) ResolvedPath {
	switch p.Kind {
	case KindRemote:
		return Remote(p.Endpoint, path.Join(p.RemotePath, name))
	default:
		return ResolvedPath{Kind: KindLocal, LocalPath: filepath.Join(p.LocalPath, name)}
	}
}

// Parent returns the containing directory of the path
func (p ResolvedPath) Parent() ResolvedPath {
	switch p.Kind {
	case KindRemote:
		if p.RemotePath == RootMarker {
			return p
		}
		return Remote(p.Endpoint, path.Dir(p.RemotePath))
	default:
		return ResolvedPath{Kind: KindLocal, LocalPath: filepath.Dir(p.LocalPath)}
	}
}

// RemoteString serializes an endpoint name and remote path to wire format
func RemoteString(endpoint, remotePath string) string {
	return Remote(endpoint, remotePath).String()
}

// normalizeRemote reduces a remote path to its canonical relative form:
// forward slashes, no empty or dot segments, RootMarker for the root.
// Anything that would climb above the endpoint root clamps to the root.
func normalizeRemote(remote string) string {
	remote = strings.ReplaceAll(remote, "\\", "/")
	// Rooted clean collapses empty segments and clamps ".." at the root
	remote = strings.TrimPrefix(path.Clean("/"+remote), "/")
	if remote == "" || remote == "." {
		return RootMarker
	}
	return remote
}

// normalizeLocal accepts both /- and \-delimited input and emits the host
// OS convention. The empty string stays empty: it is not a path, and the
// backend rejects it at call time.
func normalizeLocal(local string) string {
	if local == "" {
		return ""
	}
	if filepath.Separator == '/' {
		local = strings.ReplaceAll(local, "\\", "/")
	} else {
		local = strings.ReplaceAll(local, "/", string(filepath.Separator))
	}
	return filepath.Clean(local)
}
