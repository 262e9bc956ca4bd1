package pbx

// ObjectID is an opaque object identifier: the key of an entry in the
// object table, and the value of any field that references another object.
// References are never resolved at decode time; consumers perform their
// own lookups and must treat a miss as a legitimate outcome.
type ObjectID string

// ObjectType is the isa discriminator carried by every object record.
type ObjectType string

// Group-like containers.
const (
	ObjectTypeGroup            ObjectType = "PBXGroup"
	ObjectTypeVariantGroup     ObjectType = "PBXVariantGroup"
	ObjectTypeSyncRootGroup    ObjectType = "PBXFileSystemSynchronizedRootGroup"
	ObjectTypeSyncExceptionSet ObjectType = "PBXFileSystemSynchronizedBuildFileExceptionSet"
)

// File-level records.
const (
	ObjectTypeFileReference ObjectType = "PBXFileReference"
	ObjectTypeBuildFile     ObjectType = "PBXBuildFile"
)

// Targets and the project record itself.
const (
	ObjectTypeNativeTarget    ObjectType = "PBXNativeTarget"
	ObjectTypeAggregateTarget ObjectType = "PBXAggregateTarget"
	ObjectTypeLegacyTarget    ObjectType = "PBXLegacyTarget"
	ObjectTypeProject         ObjectType = "PBXProject"
)

// Build configuration records.
const (
	ObjectTypeConfigurationList  ObjectType = "XCConfigurationList"
	ObjectTypeBuildConfiguration ObjectType = "XCBuildConfiguration"
)

// Build phases. The first five differ only in their discriminator and all
// decode into the generic BuildPhase shape; copy-files and shell-script
// phases carry extra fields and have shapes of their own.
const (
	ObjectTypeSourcesBuildPhase     ObjectType = "PBXSourcesBuildPhase"
	ObjectTypeFrameworksBuildPhase  ObjectType = "PBXFrameworksBuildPhase"
	ObjectTypeResourcesBuildPhase   ObjectType = "PBXResourcesBuildPhase"
	ObjectTypeHeadersBuildPhase     ObjectType = "PBXHeadersBuildPhase"
	ObjectTypeRezBuildPhase         ObjectType = "PBXRezBuildPhase"
	ObjectTypeCopyFilesBuildPhase   ObjectType = "PBXCopyFilesBuildPhase"
	ObjectTypeShellScriptBuildPhase ObjectType = "PBXShellScriptBuildPhase"
)

// Swift package records.
const (
	ObjectTypeRemotePackageReference   ObjectType = "XCRemoteSwiftPackageReference"
	ObjectTypeLocalPackageReference    ObjectType = "XCLocalSwiftPackageReference"
	ObjectTypePackageProductDependency ObjectType = "XCSwiftPackageProductDependency"
)

// Cross-project plumbing.
const (
	ObjectTypeContainerItemProxy ObjectType = "PBXContainerItemProxy"
	ObjectTypeTargetDependency   ObjectType = "PBXTargetDependency"
	ObjectTypeBuildRule          ObjectType = "PBXBuildRule"
	ObjectTypeReferenceProxy     ObjectType = "PBXReferenceProxy"
)

// Object is one decoded record of the project's object table: a closed set
// of known shapes plus the UnknownObject catch-all for discriminators this
// package has never heard of.
type Object interface {
	// Type returns the isa discriminator the record was decoded from.
	Type() ObjectType
}

// Project is the decoded document root: version metadata, the root object
// reference, and the flat object table. The table owns every record;
// relationships between records exist only as ObjectID strings inside
// them. RootObject is expected to be a key of Objects but this is
// deliberately never verified at decode time.
type Project struct {
	ArchiveVersion string
	ObjectVersion  string
	Classes        map[string]Value
	RootObject     ObjectID
	Objects        map[ObjectID]Object
}

// Group is a PBXGroup record: one folder of the project navigator tree.
type Group struct {
	Children   []ObjectID
	Name       string
	Path       string
	SourceTree string // anchor for Path: "<group>", SOURCE_ROOT, ...
	// Editor settings, all conventionally 0/1 or small numerals.
	UsesTabs    string
	IndentWidth string
	TabWidth    string
	WrapsLines  string
}

// Type implements Object.
func (*Group) Type() ObjectType { return ObjectTypeGroup }

// VariantGroup is a PBXVariantGroup record: a group of per-locale
// variants of one resource.
type VariantGroup struct {
	Children   []ObjectID
	Name       string
	Path       string
	SourceTree string
}

// Type implements Object.
func (*VariantGroup) Type() ObjectType { return ObjectTypeVariantGroup }

// SyncRootGroup is a PBXFileSystemSynchronizedRootGroup record: a folder
// whose membership Xcode mirrors from the file system instead of listing
// children explicitly.
type SyncRootGroup struct {
	Path              string
	Name              string
	SourceTree        string
	Exceptions        []ObjectID
	ExplicitFileTypes *Value
	ExplicitFolders   []string
}

// Type implements Object.
func (*SyncRootGroup) Type() ObjectType { return ObjectTypeSyncRootGroup }

// SyncExceptionSet is a PBXFileSystemSynchronizedBuildFileExceptionSet
// record: the files of a synchronized group that one target treats
// differently from the folder default.
type SyncExceptionSet struct {
	Target               ObjectID
	MembershipExceptions []string
	PublicHeaders        []string
	PrivateHeaders       []string
}

// Type implements Object.
func (*SyncExceptionSet) Type() ObjectType { return ObjectTypeSyncExceptionSet }

// FileReference is a PBXFileReference record: one on-disk file.
type FileReference struct {
	Path              string
	Name              string
	SourceTree        string
	LastKnownFileType string
	ExplicitFileType  *Value // free-form: overrides LastKnownFileType when set
	FileEncoding      string
	IncludeInIndex    string
	LineEnding        string
	UsesTabs          string
	IndentWidth       string
	TabWidth          string
	WrapsLines        string
}

// Type implements Object.
func (*FileReference) Type() ObjectType { return ObjectTypeFileReference }

// BuildFile is a PBXBuildFile record: the use of one file (or package
// product) by one build phase, with optional per-use settings.
type BuildFile struct {
	FileRef         ObjectID
	ProductRef      ObjectID
	Settings        *Value // free-form: compiler flags, attributes, ...
	PlatformFilter  string
	PlatformFilters []string
}

// Type implements Object.
func (*BuildFile) Type() ObjectType { return ObjectTypeBuildFile }

// NativeTarget is a PBXNativeTarget record: a target producing a build
// product (app, framework, test bundle, ...).
type NativeTarget struct {
	Name                         string
	BuildPhases                  []ObjectID
	BuildConfigurationList       ObjectID
	BuildRules                   []ObjectID
	Dependencies                 []ObjectID
	PackageProductDependencies   []ObjectID
	FileSystemSynchronizedGroups []ObjectID
	ProductName                  string
	ProductReference             ObjectID
	ProductType                  string
}

// Type implements Object.
func (*NativeTarget) Type() ObjectType { return ObjectTypeNativeTarget }

// AggregateTarget is a PBXAggregateTarget record: a target that produces
// no product of its own and exists to group phases and dependencies.
type AggregateTarget struct {
	Name                   string
	BuildPhases            []ObjectID
	BuildConfigurationList ObjectID
	Dependencies           []ObjectID
	ProductName            string
}

// Type implements Object.
func (*AggregateTarget) Type() ObjectType { return ObjectTypeAggregateTarget }

// LegacyTarget is a PBXLegacyTarget record: a target that shells out to an
// external build tool.
type LegacyTarget struct {
	Name                           string
	BuildPhases                    []ObjectID
	BuildToolPath                  string
	BuildArgumentsString           string
	BuildWorkingDirectory          string
	PassBuildSettingsInEnvironment string
	BuildConfigurationList         ObjectID
	Dependencies                   []ObjectID
}

// Type implements Object.
func (*LegacyTarget) Type() ObjectType { return ObjectTypeLegacyTarget }

// ProjectObject is the PBXProject record, the root object of a well-formed
// document. Named ProjectObject because Project names the document root.
type ProjectObject struct {
	BuildConfigurationList           ObjectID
	MainGroup                        ObjectID
	Targets                          []ObjectID
	Attributes                       *Value // free-form: org name, upgrade checks, per-target attributes
	CompatibilityVersion             string
	DevelopmentRegion                string
	HasScannedForEncodings           string
	KnownRegions                     []string
	MinimizedProjectReferenceProxies string
	PackageReferences                []ObjectID
	PreferredProjectObjectVersion    string
	ProductRefGroup                  ObjectID
	ProjectDirPath                   string
	ProjectReferences                *Value // free-form: list of {ProductGroup, ProjectRef} pairs
	ProjectRoot                      string
}

// Type implements Object.
func (*ProjectObject) Type() ObjectType { return ObjectTypeProject }

// ConfigurationList is an XCConfigurationList record: the ordered build
// configurations of a project or target.
type ConfigurationList struct {
	BuildConfigurations           []ObjectID
	DefaultConfigurationName      string
	DefaultConfigurationIsVisible string
}

// Type implements Object.
func (*ConfigurationList) Type() ObjectType { return ObjectTypeConfigurationList }

// BuildConfiguration is an XCBuildConfiguration record: one named settings
// dictionary (Debug, Release, ...).
type BuildConfiguration struct {
	Name                       string
	BuildSettings              *Value // free-form: the whole point of this record
	BaseConfigurationReference ObjectID
}

// Type implements Object.
func (*BuildConfiguration) Type() ObjectType { return ObjectTypeBuildConfiguration }

// BuildPhase is the generic shape shared by the sources, frameworks,
// resources, headers, and Rez phases. Kind records which of the five
// discriminators the record actually carried.
type BuildPhase struct {
	Kind                               ObjectType
	Files                              []ObjectID
	BuildActionMask                    string
	RunOnlyForDeploymentPostprocessing string
}

// Type implements Object.
func (p *BuildPhase) Type() ObjectType { return p.Kind }

// CopyFilesBuildPhase is a PBXCopyFilesBuildPhase record: a phase copying
// its files into a destination directory of the product.
type CopyFilesBuildPhase struct {
	Files                              []ObjectID
	DstPath                            string
	DstSubfolderSpec                   string
	Name                               string
	BuildActionMask                    string
	RunOnlyForDeploymentPostprocessing string
}

// Type implements Object.
func (*CopyFilesBuildPhase) Type() ObjectType { return ObjectTypeCopyFilesBuildPhase }

// ShellScriptBuildPhase is a PBXShellScriptBuildPhase record: a phase
// running an inline script.
type ShellScriptBuildPhase struct {
	ShellPath                          string
	ShellScript                        Value // free-form script body
	Name                               string
	Files                              []ObjectID
	InputPaths                         []string
	OutputPaths                        []string
	InputFileListPaths                 []string
	OutputFileListPaths                []string
	BuildActionMask                    string
	RunOnlyForDeploymentPostprocessing string
	ShowEnvVarsInLog                   string
	AlwaysOutOfDate                    string
	DependencyFile                     string
}

// Type implements Object.
func (*ShellScriptBuildPhase) Type() ObjectType { return ObjectTypeShellScriptBuildPhase }

// RemotePackageReference is an XCRemoteSwiftPackageReference record: a
// Swift package fetched from a repository URL.
type RemotePackageReference struct {
	RepositoryURL string
	Requirement   *Value // free-form: kind plus version/branch/revision fields
}

// Type implements Object.
func (*RemotePackageReference) Type() ObjectType { return ObjectTypeRemotePackageReference }

// LocalPackageReference is an XCLocalSwiftPackageReference record: a Swift
// package on disk next to the project.
type LocalPackageReference struct {
	RelativePath string
}

// Type implements Object.
func (*LocalPackageReference) Type() ObjectType { return ObjectTypeLocalPackageReference }

// PackageProductDependency is an XCSwiftPackageProductDependency record:
// one product of a package reference, as consumed by a target.
type PackageProductDependency struct {
	ProductName string
	Package     ObjectID
	Plugin      ObjectID
}

// Type implements Object.
func (*PackageProductDependency) Type() ObjectType { return ObjectTypePackageProductDependency }

// ContainerItemProxy is a PBXContainerItemProxy record: an indirection to
// an object that may live in another project container.
type ContainerItemProxy struct {
	ContainerPortal      ObjectID
	ProxyType            string
	RemoteGlobalIDString ObjectID
	RemoteInfo           string
}

// Type implements Object.
func (*ContainerItemProxy) Type() ObjectType { return ObjectTypeContainerItemProxy }

// TargetDependency is a PBXTargetDependency record: one edge of the
// target dependency graph. Every field is optional in the wild; the
// target may be named directly or through a proxy.
type TargetDependency struct {
	Target         ObjectID
	TargetProxy    ObjectID
	Name           string
	PlatformFilter string
	ProductRef     ObjectID
}

// Type implements Object.
func (*TargetDependency) Type() ObjectType { return ObjectTypeTargetDependency }

// BuildRule is a PBXBuildRule record: a custom rule mapping a file type
// to a compiler or script.
type BuildRule struct {
	CompilerSpec             string
	FileType                 string
	FilePatterns             string
	Script                   *Value // free-form script body
	InputFiles               []string
	OutputFiles              []string
	OutputFilesCompilerFlags []string
	IsEditable               string
	RunOncePerArchitecture   string
}

// Type implements Object.
func (*BuildRule) Type() ObjectType { return ObjectTypeBuildRule }

// ReferenceProxy is a PBXReferenceProxy record: a stand-in for a product
// built by another project.
type ReferenceProxy struct {
	FileType   string
	RemoteRef  ObjectID
	Path       string
	SourceTree string
}

// Type implements Object.
func (*ReferenceProxy) Type() ObjectType { return ObjectTypeReferenceProxy }

// UnknownObject is the catch-all variant for records whose discriminator
// is not in the known-shape table. Every field, the discriminator
// included, is kept as a dynamic value so nothing the document said is
// lost. An unrecognized discriminator is never a decode error; this
// variant is the format's entire forward-compatibility story.
type UnknownObject struct {
	Fields map[string]Value
}

// Type returns the discriminator preserved in the field map.
func (o *UnknownObject) Type() ObjectType {
	if isa, ok := o.Fields["isa"]; ok {
		if s, err := isa.AsString(); err == nil {
			return ObjectType(s)
		}
	}
	return ""
}

// Compile-time union membership checks.
var (
	_ Object = (*Group)(nil)
	_ Object = (*VariantGroup)(nil)
	_ Object = (*SyncRootGroup)(nil)
	_ Object = (*SyncExceptionSet)(nil)
	_ Object = (*FileReference)(nil)
	_ Object = (*BuildFile)(nil)
	_ Object = (*NativeTarget)(nil)
	_ Object = (*AggregateTarget)(nil)
	_ Object = (*LegacyTarget)(nil)
	_ Object = (*ProjectObject)(nil)
	_ Object = (*ConfigurationList)(nil)
	_ Object = (*BuildConfiguration)(nil)
	_ Object = (*BuildPhase)(nil)
	_ Object = (*CopyFilesBuildPhase)(nil)
	_ Object = (*ShellScriptBuildPhase)(nil)
	_ Object = (*RemotePackageReference)(nil)
	_ Object = (*LocalPackageReference)(nil)
	_ Object = (*PackageProductDependency)(nil)
	_ Object = (*ContainerItemProxy)(nil)
	_ Object = (*TargetDependency)(nil)
	_ Object = (*BuildRule)(nil)
	_ Object = (*ReferenceProxy)(nil)
	_ Object = (*UnknownObject)(nil)
)
