package buildinfo

const Graffiti = "        __                \n  ___ _/ /________ ___    \n / _ `/ __/ __/ -_) -_)   \n \\_, /\\__/_/  \\__/\\__/    \n  /_/                     \n\n"

// Overridden at link time with -ldflags "-X".
var (
	BuildTag string = "v0.0.0"
	Name     string = "QTREE"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
