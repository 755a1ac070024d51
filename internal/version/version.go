package version

// Version is the build version, set at link time with -ldflags "-X".
// Version 为构建版本号，构建时通过 -ldflags "-X" 注入。
var Version = "dev"
