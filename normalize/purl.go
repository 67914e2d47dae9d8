// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package normalize

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/package-url/packageurl-go"
)

// function to make purl look more visually appealing
func BeautifyPURL(pURL string) (string, error) {
	p, err := packageurl.FromString(pURL)
	if err != nil {
		return pURL, err
	}
	//if the namespace is empty we don't want any leading slashes
	if p.Namespace == "" {
		return p.Name, nil
	} else {
		return p.Namespace + "/" + p.Name, nil
	}
}

func ToPurlWithoutVersion(purl packageurl.PackageURL) string {
	purl.Version = ""
	purl.Qualifiers = nil
	return purl.ToString()
}

type urlRule func(u *url.URL, segments []string) (packageurl.PackageURL, bool)

var hostRules = map[string]urlRule{
	"files.pythonhosted.org": pypiFromURL,
	"pypi.python.org":        pypiFromURL,
	"pypi.org":               pypiFromURL,
	"registry.npmjs.org":     npmFromURL,
	"registry.yarnpkg.com":   npmFromURL,
	"github.com":             githubFromURL,
	"repo1.maven.org":        mavenFromURL,
	"repo.maven.apache.org":  mavenFromURL,
	"central.maven.org":      mavenFromURL,
	"crates.io":              cargoFromURL,
	"static.crates.io":       cargoFromURL,
	"rubygems.org":           gemFromURL,
}

// PackageURLFromDownloadURL infers the purl of a package from its download url.
// Only well known package repositories are recognized.
func PackageURLFromDownloadURL(downloadURL string) (packageurl.PackageURL, bool) {
	u, err := url.Parse(strings.TrimSpace(downloadURL))
	if err != nil || u.Host == "" {
		return packageurl.PackageURL{}, false
	}
	rule, ok := hostRules[strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))]
	if !ok {
		return packageurl.PackageURL{}, false
	}
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, s := range segments {
		if unescaped, err := url.PathUnescape(s); err == nil {
			segments[i] = unescaped
		}
	}
	if len(segments) == 0 {
		return packageurl.PackageURL{}, false
	}
	return rule(u, segments)
}

var archiveExtensions = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".zip", ".tar", ".egg", ".gem", ".crate", ".jar", ".whl"}

func stripArchiveExtension(filename string) string {
	lower := strings.ToLower(filename)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}

// splitNameVersion splits "name-1.2.3" at the first dash followed by a digit.
func splitNameVersion(base string) (string, string, bool) {
	for i := 0; i < len(base)-1; i++ {
		if base[i] == '-' && unicode.IsDigit(rune(base[i+1])) {
			return base[:i], base[i+1:], i > 0
		}
	}
	return "", "", false
}

func pypiFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	filename := segments[len(segments)-1]
	var name, version string
	if strings.HasSuffix(strings.ToLower(filename), ".whl") {
		// name-version(-build)?-python-abi-platform.whl
		parts := strings.Split(stripArchiveExtension(filename), "-")
		if len(parts) < 5 {
			return packageurl.PackageURL{}, false
		}
		name, version = parts[0], parts[1]
	} else {
		var ok bool
		name, version, ok = splitNameVersion(stripArchiveExtension(filename))
		if !ok {
			return packageurl.PackageURL{}, false
		}
	}
	name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	return *packageurl.NewPackageURL(packageurl.TypePyPi, "", name, version, nil, ""), true
}

// npmFromURL handles <registry>/[@scope/]name/-/name-version.tgz
func npmFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	dash := -1
	for i, s := range segments {
		if s == "-" {
			dash = i
			break
		}
	}
	if dash < 1 || dash != len(segments)-2 {
		return packageurl.PackageURL{}, false
	}
	var namespace, name string
	switch dash {
	case 1:
		name = segments[0]
	case 2:
		namespace, name = segments[0], segments[1]
	default:
		return packageurl.PackageURL{}, false
	}
	base := stripArchiveExtension(segments[len(segments)-1])
	if !strings.HasPrefix(base, name+"-") {
		return packageurl.PackageURL{}, false
	}
	version := strings.TrimPrefix(base, name+"-")
	return *packageurl.NewPackageURL(packageurl.TypeNPM, namespace, name, version, nil, ""), true
}

// githubFromURL handles archive and release download urls of a repository.
func githubFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	if len(segments) < 4 {
		return packageurl.PackageURL{}, false
	}
	namespace, name := segments[0], segments[1]
	var version string
	switch segments[2] {
	case "archive":
		rest := segments[3:]
		if len(rest) == 3 && rest[0] == "refs" && (rest[1] == "tags" || rest[1] == "heads") {
			rest = rest[2:]
		}
		if len(rest) != 1 {
			return packageurl.PackageURL{}, false
		}
		version = stripArchiveExtension(rest[0])
	case "releases":
		if len(segments) < 6 || segments[3] != "download" {
			return packageurl.PackageURL{}, false
		}
		version = segments[4]
	default:
		return packageurl.PackageURL{}, false
	}
	if version == "" {
		return packageurl.PackageURL{}, false
	}
	return *packageurl.NewPackageURL(packageurl.TypeGithub, namespace, name, version, nil, ""), true
}

// mavenFromURL handles maven2/<group path>/<artifact>/<version>/<artifact>-<version>[-classifier].<ext>
func mavenFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	if segments[0] == "maven2" {
		segments = segments[1:]
	}
	if len(segments) < 4 {
		return packageurl.PackageURL{}, false
	}
	filename := segments[len(segments)-1]
	version := segments[len(segments)-2]
	artifact := segments[len(segments)-3]
	group := strings.Join(segments[:len(segments)-3], ".")

	prefix := artifact + "-" + version
	if !strings.HasPrefix(filename, prefix) {
		return packageurl.PackageURL{}, false
	}
	var qualifiers packageurl.Qualifiers
	ext := path.Ext(filename)
	if classifier := strings.TrimPrefix(strings.TrimSuffix(filename[len(prefix):], ext), "-"); classifier != "" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "classifier", Value: classifier})
	}
	if ext != "" && ext != ".jar" {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "type", Value: strings.TrimPrefix(ext, ".")})
	}
	return *packageurl.NewPackageURL(packageurl.TypeMaven, group, artifact, version, qualifiers, ""), true
}

// cargoFromURL handles api/v1/crates/<name>/<version>/download and crates/<name>/<name>-<version>.crate
func cargoFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	if len(segments) == 6 && segments[0] == "api" && segments[2] == "crates" && segments[5] == "download" {
		return *packageurl.NewPackageURL(packageurl.TypeCargo, "", segments[3], segments[4], nil, ""), true
	}
	if len(segments) == 3 && segments[0] == "crates" {
		name := segments[1]
		base := stripArchiveExtension(segments[2])
		if strings.HasPrefix(base, name+"-") {
			return *packageurl.NewPackageURL(packageurl.TypeCargo, "", name, strings.TrimPrefix(base, name+"-"), nil, ""), true
		}
	}
	return packageurl.PackageURL{}, false
}

// gemFromURL handles downloads/<name>-<version>[-platform].gem
func gemFromURL(_ *url.URL, segments []string) (packageurl.PackageURL, bool) {
	if len(segments) != 2 || (segments[0] != "downloads" && segments[0] != "gems") {
		return packageurl.PackageURL{}, false
	}
	name, version, ok := splitNameVersion(stripArchiveExtension(segments[1]))
	if !ok {
		return packageurl.PackageURL{}, false
	}
	var qualifiers packageurl.Qualifiers
	if i := strings.Index(version, "-"); i != -1 {
		qualifiers = append(qualifiers, packageurl.Qualifier{Key: "platform", Value: version[i+1:]})
		version = version[:i]
	}
	return *packageurl.NewPackageURL(packageurl.TypeGem, "", name, version, qualifiers, ""), true
}
