package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	unsupportedAnchorTemplateConstant       = "unsupported working directory anchor: %s"
	anchorResolutionErrorTemplateConstant   = "unable to resolve %s anchor: %w"
	directoryInaccessibleTemplateConstant   = "working directory %s is not accessible: %w"
	notDirectoryTemplateConstant            = "working directory %s is not a directory"
	repositoryFallbackMessageConstant       = "no enclosing git repository; anchoring to current directory"
	workingDirectoryResolvedMessageConstant = "working directory resolved"
	logFieldDirectoryConstant               = "directory"
	logFieldAnchorConstant                  = "anchor"
	currentDirectoryReferenceConstant       = "."
)

// Anchor names the directory a relative working directory is resolved against.
type Anchor string

// Supported anchors.
const (
	AnchorRepository Anchor = "repository"
	AnchorCurrent    Anchor = "current"
	AnchorExecutable Anchor = "executable"
)

// ParseAnchor normalizes a configured anchor. An empty value selects AnchorRepository.
func ParseAnchor(rawAnchor string) (Anchor, error) {
	normalizedAnchor := Anchor(strings.ToLower(strings.TrimSpace(rawAnchor)))
	switch normalizedAnchor {
	case "":
		return AnchorRepository, nil
	case AnchorRepository, AnchorCurrent, AnchorExecutable:
		return normalizedAnchor, nil
	default:
		return "", fmt.Errorf(unsupportedAnchorTemplateConstant, rawAnchor)
	}
}

// Request describes the directory to resolve.
type Request struct {
	Directory string
	Anchor    Anchor
}

// Dependencies configures collaborators for a Resolver. Nil members fall back to the operating system.
type Dependencies struct {
	CurrentDirectoryProvider func() (string, error)
	ExecutablePathProvider   func() (string, error)
	HomeExpander             *HomeExpander
	RepositoryRootLocator    RepositoryRootLocator
	Logger                   *zap.Logger
}

// Resolver turns a Request into an absolute, existing directory.
type Resolver struct {
	currentDirectoryProvider func() (string, error)
	executablePathProvider   func() (string, error)
	homeExpander             *HomeExpander
	repositoryRootLocator    RepositoryRootLocator
	logger                   *zap.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(dependencies Dependencies) *Resolver {
	resolver := &Resolver{
		currentDirectoryProvider: dependencies.CurrentDirectoryProvider,
		executablePathProvider:   dependencies.ExecutablePathProvider,
		homeExpander:             dependencies.HomeExpander,
		repositoryRootLocator:    dependencies.RepositoryRootLocator,
		logger:                   dependencies.Logger,
	}
	if resolver.currentDirectoryProvider == nil {
		resolver.currentDirectoryProvider = os.Getwd
	}
	if resolver.executablePathProvider == nil {
		resolver.executablePathProvider = os.Executable
	}
	if resolver.homeExpander == nil {
		resolver.homeExpander = NewHomeExpander()
	}
	if resolver.repositoryRootLocator == nil {
		resolver.repositoryRootLocator = GitRepositoryRootLocator{}
	}
	if resolver.logger == nil {
		resolver.logger = zap.NewNop()
	}
	return resolver
}

// Resolve computes the working directory and verifies that it exists.
func (resolver *Resolver) Resolve(request Request) (string, error) {
	requestedDirectory := strings.TrimSpace(request.Directory)
	if len(requestedDirectory) == 0 {
		requestedDirectory = currentDirectoryReferenceConstant
	}
	requestedDirectory = resolver.homeExpander.Expand(requestedDirectory)

	candidateDirectory := filepath.Clean(requestedDirectory)
	if !filepath.IsAbs(candidateDirectory) {
		anchorDirectory, anchorError := resolver.anchorDirectory(request.Anchor)
		if anchorError != nil {
			return "", anchorError
		}
		candidateDirectory = filepath.Join(anchorDirectory, candidateDirectory)
	}

	directoryInfo, statError := os.Stat(candidateDirectory)
	if statError != nil {
		return "", fmt.Errorf(directoryInaccessibleTemplateConstant, candidateDirectory, statError)
	}
	if !directoryInfo.IsDir() {
		return "", fmt.Errorf(notDirectoryTemplateConstant, candidateDirectory)
	}

	resolver.logger.Debug(
		workingDirectoryResolvedMessageConstant,
		zap.String(logFieldDirectoryConstant, candidateDirectory),
		zap.String(logFieldAnchorConstant, string(request.Anchor)),
	)
	return candidateDirectory, nil
}

func (resolver *Resolver) anchorDirectory(anchor Anchor) (string, error) {
	parsedAnchor, parseError := ParseAnchor(string(anchor))
	if parseError != nil {
		return "", parseError
	}

	switch parsedAnchor {
	case AnchorCurrent:
		return resolver.currentDirectory()
	case AnchorExecutable:
		executablePath, executableError := resolver.executablePathProvider()
		if executableError != nil {
			return "", fmt.Errorf(anchorResolutionErrorTemplateConstant, parsedAnchor, executableError)
		}
		if resolvedPath, symlinkError := filepath.EvalSymlinks(executablePath); symlinkError == nil {
			executablePath = resolvedPath
		}
		return filepath.Dir(executablePath), nil
	default:
		currentDirectory, currentDirectoryError := resolver.currentDirectory()
		if currentDirectoryError != nil {
			return "", currentDirectoryError
		}
		repositoryRoot, locateError := resolver.repositoryRootLocator.LocateRoot(currentDirectory)
		if locateError != nil {
			if errors.Is(locateError, ErrNotInRepository) {
				resolver.logger.Debug(repositoryFallbackMessageConstant, zap.String(logFieldDirectoryConstant, currentDirectory))
				return currentDirectory, nil
			}
			return "", fmt.Errorf(anchorResolutionErrorTemplateConstant, parsedAnchor, locateError)
		}
		return repositoryRoot, nil
	}
}

func (resolver *Resolver) currentDirectory() (string, error) {
	currentDirectory, currentDirectoryError := resolver.currentDirectoryProvider()
	if currentDirectoryError != nil {
		return "", fmt.Errorf(anchorResolutionErrorTemplateConstant, AnchorCurrent, currentDirectoryError)
	}
	return currentDirectory, nil
}
