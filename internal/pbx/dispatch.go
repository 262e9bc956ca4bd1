package pbx

// objectDecoderFunc decodes one raw record into its shape. The dict's
// path already locates the record inside the object table.
type objectDecoderFunc func(d *dict) (Object, error)

// objectDecoders is the static routing table from discriminator to shape
// decoder. The five generic phase subtypes deliberately share one decoder:
// they differ only in the discriminator string, never in field shape.
var objectDecoders = map[ObjectType]objectDecoderFunc{
	ObjectTypeGroup:                    decodeGroup,
	ObjectTypeVariantGroup:             decodeVariantGroup,
	ObjectTypeSyncRootGroup:            decodeSyncRootGroup,
	ObjectTypeSyncExceptionSet:         decodeSyncExceptionSet,
	ObjectTypeFileReference:            decodeFileReference,
	ObjectTypeBuildFile:                decodeBuildFile,
	ObjectTypeNativeTarget:             decodeNativeTarget,
	ObjectTypeAggregateTarget:          decodeAggregateTarget,
	ObjectTypeLegacyTarget:             decodeLegacyTarget,
	ObjectTypeProject:                  decodeProjectObject,
	ObjectTypeConfigurationList:        decodeConfigurationList,
	ObjectTypeBuildConfiguration:       decodeBuildConfiguration,
	ObjectTypeSourcesBuildPhase:        decodeBuildPhase(ObjectTypeSourcesBuildPhase),
	ObjectTypeFrameworksBuildPhase:     decodeBuildPhase(ObjectTypeFrameworksBuildPhase),
	ObjectTypeResourcesBuildPhase:      decodeBuildPhase(ObjectTypeResourcesBuildPhase),
	ObjectTypeHeadersBuildPhase:        decodeBuildPhase(ObjectTypeHeadersBuildPhase),
	ObjectTypeRezBuildPhase:            decodeBuildPhase(ObjectTypeRezBuildPhase),
	ObjectTypeCopyFilesBuildPhase:      decodeCopyFilesBuildPhase,
	ObjectTypeShellScriptBuildPhase:    decodeShellScriptBuildPhase,
	ObjectTypeRemotePackageReference:   decodeRemotePackageReference,
	ObjectTypeLocalPackageReference:    decodeLocalPackageReference,
	ObjectTypePackageProductDependency: decodePackageProductDependency,
	ObjectTypeContainerItemProxy:       decodeContainerItemProxy,
	ObjectTypeTargetDependency:         decodeTargetDependency,
	ObjectTypeBuildRule:                decodeBuildRule,
	ObjectTypeReferenceProxy:           decodeReferenceProxy,
}

// decodeObject extracts the discriminator and routes to the matching
// shape decoder. An unrecognized discriminator is not an error: the whole
// record is kept as dynamic values, discriminator included.
func decodeObject(d *dict) (Object, error) {
	isa := d.isa()
	if d.err != nil {
		return nil, d.err
	}
	if decode, ok := objectDecoders[ObjectType(isa)]; ok {
		return decode(d)
	}
	fields := d.valueMap()
	if d.err != nil {
		return nil, d.err
	}
	return &UnknownObject{Fields: fields}, nil
}

// decodeGroup decodes a PBXGroup record.
func decodeGroup(d *dict) (Object, error) {
	return d.finish(&Group{
		Children:    d.refs("children"),
		Name:        d.str("name"),
		Path:        d.str("path"),
		SourceTree:  d.str("sourceTree"),
		UsesTabs:    d.str("usesTabs"),
		IndentWidth: d.str("indentWidth"),
		TabWidth:    d.str("tabWidth"),
		WrapsLines:  d.str("wrapsLines"),
	})
}

// decodeVariantGroup decodes a PBXVariantGroup record.
func decodeVariantGroup(d *dict) (Object, error) {
	return d.finish(&VariantGroup{
		Children:   d.refs("children"),
		Name:       d.str("name"),
		Path:       d.str("path"),
		SourceTree: d.str("sourceTree"),
	})
}

// decodeSyncRootGroup decodes a PBXFileSystemSynchronizedRootGroup record.
func decodeSyncRootGroup(d *dict) (Object, error) {
	return d.finish(&SyncRootGroup{
		Path:              d.str("path"),
		Name:              d.str("name"),
		SourceTree:        d.str("sourceTree"),
		Exceptions:        d.refs("exceptions"),
		ExplicitFileTypes: d.value("explicitFileTypes"),
		ExplicitFolders:   d.strs("explicitFolders"),
	})
}

// decodeSyncExceptionSet decodes a
// PBXFileSystemSynchronizedBuildFileExceptionSet record.
func decodeSyncExceptionSet(d *dict) (Object, error) {
	return d.finish(&SyncExceptionSet{
		Target:               d.reqRef("target"),
		MembershipExceptions: d.strs("membershipExceptions"),
		PublicHeaders:        d.strs("publicHeaders"),
		PrivateHeaders:       d.strs("privateHeaders"),
	})
}

// decodeFileReference decodes a PBXFileReference record.
func decodeFileReference(d *dict) (Object, error) {
	return d.finish(&FileReference{
		Path:              d.str("path"),
		Name:              d.str("name"),
		SourceTree:        d.str("sourceTree"),
		LastKnownFileType: d.str("lastKnownFileType"),
		ExplicitFileType:  d.value("explicitFileType"),
		FileEncoding:      d.str("fileEncoding"),
		IncludeInIndex:    d.str("includeInIndex"),
		LineEnding:        d.str("lineEnding"),
		UsesTabs:          d.str("usesTabs"),
		IndentWidth:       d.str("indentWidth"),
		TabWidth:          d.str("tabWidth"),
		WrapsLines:        d.str("wrapsLines"),
	})
}

// decodeBuildFile decodes a PBXBuildFile record.
func decodeBuildFile(d *dict) (Object, error) {
	return d.finish(&BuildFile{
		FileRef:         d.ref("fileRef"),
		ProductRef:      d.ref("productRef"),
		Settings:        d.value("settings"),
		PlatformFilter:  d.str("platformFilter"),
		PlatformFilters: d.strs("platformFilters"),
	})
}

// decodeNativeTarget decodes a PBXNativeTarget record.
func decodeNativeTarget(d *dict) (Object, error) {
	return d.finish(&NativeTarget{
		Name:                         d.reqStr("name"),
		BuildPhases:                  d.reqRefs("buildPhases"),
		BuildConfigurationList:       d.ref("buildConfigurationList"),
		BuildRules:                   d.refs("buildRules"),
		Dependencies:                 d.refs("dependencies"),
		PackageProductDependencies:   d.refs("packageProductDependencies"),
		FileSystemSynchronizedGroups: d.refs("fileSystemSynchronizedGroups"),
		ProductName:                  d.str("productName"),
		ProductReference:             d.ref("productReference"),
		ProductType:                  d.str("productType"),
	})
}

// decodeAggregateTarget decodes a PBXAggregateTarget record.
func decodeAggregateTarget(d *dict) (Object, error) {
	return d.finish(&AggregateTarget{
		Name:                   d.reqStr("name"),
		BuildPhases:            d.reqRefs("buildPhases"),
		BuildConfigurationList: d.ref("buildConfigurationList"),
		Dependencies:           d.refs("dependencies"),
		ProductName:            d.str("productName"),
	})
}

// decodeLegacyTarget decodes a PBXLegacyTarget record.
func decodeLegacyTarget(d *dict) (Object, error) {
	return d.finish(&LegacyTarget{
		Name:                           d.reqStr("name"),
		BuildPhases:                    d.reqRefs("buildPhases"),
		BuildToolPath:                  d.str("buildToolPath"),
		BuildArgumentsString:           d.str("buildArgumentsString"),
		BuildWorkingDirectory:          d.str("buildWorkingDirectory"),
		PassBuildSettingsInEnvironment: d.str("passBuildSettingsInEnvironment"),
		BuildConfigurationList:         d.ref("buildConfigurationList"),
		Dependencies:                   d.refs("dependencies"),
	})
}

// decodeProjectObject decodes the PBXProject record.
func decodeProjectObject(d *dict) (Object, error) {
	return d.finish(&ProjectObject{
		BuildConfigurationList:           d.reqRef("buildConfigurationList"),
		MainGroup:                        d.reqRef("mainGroup"),
		Targets:                          d.reqRefs("targets"),
		Attributes:                       d.value("attributes"),
		CompatibilityVersion:             d.str("compatibilityVersion"),
		DevelopmentRegion:                d.str("developmentRegion"),
		HasScannedForEncodings:           d.str("hasScannedForEncodings"),
		KnownRegions:                     d.strs("knownRegions"),
		MinimizedProjectReferenceProxies: d.str("minimizedProjectReferenceProxies"),
		PackageReferences:                d.refs("packageReferences"),
		PreferredProjectObjectVersion:    d.str("preferredProjectObjectVersion"),
		ProductRefGroup:                  d.ref("productRefGroup"),
		ProjectDirPath:                   d.str("projectDirPath"),
		ProjectReferences:                d.value("projectReferences"),
		ProjectRoot:                      d.str("projectRoot"),
	})
}

// decodeConfigurationList decodes an XCConfigurationList record.
func decodeConfigurationList(d *dict) (Object, error) {
	return d.finish(&ConfigurationList{
		BuildConfigurations:           d.reqRefs("buildConfigurations"),
		DefaultConfigurationName:      d.str("defaultConfigurationName"),
		DefaultConfigurationIsVisible: d.str("defaultConfigurationIsVisible"),
	})
}

// decodeBuildConfiguration decodes an XCBuildConfiguration record.
func decodeBuildConfiguration(d *dict) (Object, error) {
	return d.finish(&BuildConfiguration{
		Name:                       d.reqStr("name"),
		BuildSettings:              d.value("buildSettings"),
		BaseConfigurationReference: d.ref("baseConfigurationReference"),
	})
}

// decodeBuildPhase returns the decoder for one of the five generic phase
// discriminators, recording which one the record carried.
func decodeBuildPhase(kind ObjectType) objectDecoderFunc {
	return func(d *dict) (Object, error) {
		return d.finish(&BuildPhase{
			Kind:                               kind,
			Files:                              d.reqRefs("files"),
			BuildActionMask:                    d.str("buildActionMask"),
			RunOnlyForDeploymentPostprocessing: d.str("runOnlyForDeploymentPostprocessing"),
		})
	}
}

// decodeCopyFilesBuildPhase decodes a PBXCopyFilesBuildPhase record.
func decodeCopyFilesBuildPhase(d *dict) (Object, error) {
	return d.finish(&CopyFilesBuildPhase{
		Files:                              d.reqRefs("files"),
		DstPath:                            d.reqStr("dstPath"),
		DstSubfolderSpec:                   d.reqStr("dstSubfolderSpec"),
		Name:                               d.str("name"),
		BuildActionMask:                    d.str("buildActionMask"),
		RunOnlyForDeploymentPostprocessing: d.str("runOnlyForDeploymentPostprocessing"),
	})
}

// decodeShellScriptBuildPhase decodes a PBXShellScriptBuildPhase record.
func decodeShellScriptBuildPhase(d *dict) (Object, error) {
	return d.finish(&ShellScriptBuildPhase{
		ShellPath:                          d.reqStr("shellPath"),
		ShellScript:                        d.reqValue("shellScript"),
		Name:                               d.str("name"),
		Files:                              d.refs("files"),
		InputPaths:                         d.strs("inputPaths"),
		OutputPaths:                        d.strs("outputPaths"),
		InputFileListPaths:                 d.strs("inputFileListPaths"),
		OutputFileListPaths:                d.strs("outputFileListPaths"),
		BuildActionMask:                    d.str("buildActionMask"),
		RunOnlyForDeploymentPostprocessing: d.str("runOnlyForDeploymentPostprocessing"),
		ShowEnvVarsInLog:                   d.str("showEnvVarsInLog"),
		AlwaysOutOfDate:                    d.str("alwaysOutOfDate"),
		DependencyFile:                     d.str("dependencyFile"),
	})
}

// decodeRemotePackageReference decodes an XCRemoteSwiftPackageReference
// record.
func decodeRemotePackageReference(d *dict) (Object, error) {
	return d.finish(&RemotePackageReference{
		RepositoryURL: d.reqStr("repositoryURL"),
		Requirement:   d.value("requirement"),
	})
}

// decodeLocalPackageReference decodes an XCLocalSwiftPackageReference
// record.
func decodeLocalPackageReference(d *dict) (Object, error) {
	return d.finish(&LocalPackageReference{
		RelativePath: d.reqStr("relativePath"),
	})
}

// decodePackageProductDependency decodes an XCSwiftPackageProductDependency
// record.
func decodePackageProductDependency(d *dict) (Object, error) {
	return d.finish(&PackageProductDependency{
		ProductName: d.reqStr("productName"),
		Package:     d.ref("package"),
		Plugin:      d.ref("plugin"),
	})
}

// decodeContainerItemProxy decodes a PBXContainerItemProxy record.
func decodeContainerItemProxy(d *dict) (Object, error) {
	return d.finish(&ContainerItemProxy{
		ContainerPortal:      d.reqRef("containerPortal"),
		ProxyType:            d.reqStr("proxyType"),
		RemoteGlobalIDString: d.reqRef("remoteGlobalIDString"),
		RemoteInfo:           d.reqStr("remoteInfo"),
	})
}

// decodeTargetDependency decodes a PBXTargetDependency record. Every
// field is optional in the wild: the edge may name its target directly,
// through a proxy, or only by name.
func decodeTargetDependency(d *dict) (Object, error) {
	return d.finish(&TargetDependency{
		Target:         d.ref("target"),
		TargetProxy:    d.ref("targetProxy"),
		Name:           d.str("name"),
		PlatformFilter: d.str("platformFilter"),
		ProductRef:     d.ref("productRef"),
	})
}

// decodeBuildRule decodes a PBXBuildRule record.
func decodeBuildRule(d *dict) (Object, error) {
	return d.finish(&BuildRule{
		CompilerSpec:             d.reqStr("compilerSpec"),
		FileType:                 d.reqStr("fileType"),
		FilePatterns:             d.str("filePatterns"),
		Script:                   d.value("script"),
		InputFiles:               d.strs("inputFiles"),
		OutputFiles:              d.strs("outputFiles"),
		OutputFilesCompilerFlags: d.strs("outputFilesCompilerFlags"),
		IsEditable:               d.str("isEditable"),
		RunOncePerArchitecture:   d.str("runOncePerArchitecture"),
	})
}

// decodeReferenceProxy decodes a PBXReferenceProxy record.
func decodeReferenceProxy(d *dict) (Object, error) {
	return d.finish(&ReferenceProxy{
		FileType:   d.reqStr("fileType"),
		RemoteRef:  d.reqRef("remoteRef"),
		Path:       d.str("path"),
		SourceTree: d.str("sourceTree"),
	})
}
