package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant       = "ssh://"
	sshUserDelimiterConstant        = "@"
	sshPathDelimiterConstant        = ":"
	httpsProtocolPrefixConstant     = "https://"
	gitUserPrefixConstant           = "git@"
	pathSeparatorConstant           = "/"
	gitSuffixConstant               = ".git"
	endpointErrorTemplateConstant   = "%s: %s"
	invalidRemoteURLMessageConstant = "invalid remote url"
	browseURLTemplateConstant       = "https://%s/%s"
)

// RemoteEndpoint is the host and path extracted from a git remote URL.
type RemoteEndpoint struct {
	Host string
	Path string
}

// RemoteEndpointParseError indicates a remote string could not be parsed.
type RemoteEndpointParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteEndpointParseError) Error() string {
	return fmt.Sprintf(endpointErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteEndpoint extracts the host and repository path from ssh://,
// git@host:path, and https:// remote forms. The trailing .git suffix is
// dropped from the path.
func ParseRemoteEndpoint(remote string) (RemoteEndpoint, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteEndpoint{}, RemoteEndpointParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	if strings.HasPrefix(trimmedRemote, sshProtocolPrefixConstant) {
		return parseSSHEndpoint(strings.TrimPrefix(trimmedRemote, sshProtocolPrefixConstant))
	}
	if strings.HasPrefix(trimmedRemote, gitUserPrefixConstant) {
		return parseSSHEndpoint(trimmedRemote)
	}
	if strings.HasPrefix(trimmedRemote, httpsProtocolPrefixConstant) {
		return parseHTTPSEndpoint(strings.TrimPrefix(trimmedRemote, httpsProtocolPrefixConstant))
	}

	return RemoteEndpoint{}, RemoteEndpointParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
}

// BrowseURL formats the endpoint as an https browsing address.
func (endpoint RemoteEndpoint) BrowseURL() string {
	return fmt.Sprintf(browseURLTemplateConstant, endpoint.Host, endpoint.Path)
}

func parseSSHEndpoint(remote string) (RemoteEndpoint, error) {
	userSplitIndex := strings.Index(remote, sshUserDelimiterConstant)
	if userSplitIndex == -1 {
		return RemoteEndpoint{}, RemoteEndpointParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	hostAndPath := remote[userSplitIndex+1:]

	var host string
	var path string
	pathSplitIndex := strings.Index(hostAndPath, sshPathDelimiterConstant)
	if pathSplitIndex == -1 {
		slashIndex := strings.Index(hostAndPath, pathSeparatorConstant)
		if slashIndex == -1 {
			return RemoteEndpoint{}, RemoteEndpointParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
		host = hostAndPath[:slashIndex]
		path = hostAndPath[slashIndex+1:]
	} else {
		host = hostAndPath[:pathSplitIndex]
		path = hostAndPath[pathSplitIndex+1:]
	}

	return newRemoteEndpoint(host, path)
}

func parseHTTPSEndpoint(remote string) (RemoteEndpoint, error) {
	slashIndex := strings.Index(remote, pathSeparatorConstant)
	if slashIndex == -1 {
		return RemoteEndpoint{}, RemoteEndpointParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	return newRemoteEndpoint(remote[:slashIndex], remote[slashIndex+1:])
}

func newRemoteEndpoint(host string, path string) (RemoteEndpoint, error) {
	trimmedPath := strings.TrimSuffix(strings.Trim(path, pathSeparatorConstant), gitSuffixConstant)
	trimmedPath = strings.TrimSuffix(trimmedPath, pathSeparatorConstant)
	if len(strings.TrimSpace(host)) == 0 || len(trimmedPath) == 0 {
		return RemoteEndpoint{}, RemoteEndpointParseError{Input: path, Message: invalidRemoteURLMessageConstant}
	}
	return RemoteEndpoint{Host: host, Path: trimmedPath}, nil
}
