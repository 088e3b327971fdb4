package version

import "testing"

func TestParseSpec_Kind(t *testing.T) {
	tests := []struct {
		input string
		want  SpecKind
	}{
		{"", SpecAny},
		{"*", SpecAny},
		{"x", SpecAny},
		{"latest", SpecTag},
		{"next", SpecTag},
		{"beta-2", SpecTag},
		{"1.2.3", SpecExact},
		{"v6.0.0", SpecExact},
		{"1.0.0-rc.1", SpecExact},
		{"1", SpecRange},
		{"6.0", SpecRange},
		{"^4.0.0", SpecRange},
		{"~1.2", SpecRange},
		{">=1.0.0 <2.0.0", SpecRange},
		{"^1.0.0 || ^2.0.0", SpecRange},
		{"https://github.com/CocoonIO/cocoon-xml-sugar.git", SpecGit},
		{"git+https://github.com/apache/cordova-android.git#6.0.0", SpecGit},
		{"github:apache/cordova-ios", SpecGit},
		{"file:../plugins/camera", SpecPath},
		{"./local-plugin", SpecPath},
		{"/opt/plugins/camera", SpecPath},
		{"plugin-1.0.0.tgz", SpecPath},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParseSpec(tt.input)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error = %v", tt.input, err)
			}
			if spec.Kind != tt.want {
				t.Errorf("ParseSpec(%q).Kind = %v, want %v", tt.input, spec.Kind, tt.want)
			}
			if spec.String() != tt.input {
				t.Errorf("String() = %q, want %q", spec.String(), tt.input)
			}
		})
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	for _, input := range []string{"1.2.3.4.5", "^", "!latest", "1.x.3"} {
		if _, err := ParseSpec(input); err == nil {
			t.Errorf("ParseSpec(%q) succeeded, want error", input)
		}
	}
}

func TestSpec_Allows(t *testing.T) {
	tests := []struct {
		spec     string
		version  string
		expected bool
	}{
		{"*", "9.9.9", true},
		{"1.2.3", "1.2.3", true},
		{"1.2.3", "1.2.4", false},
		{"6.0", "6.0.5", true},
		{"6.0", "6.1.0", false},
		{"1", "1.9.0", true},
		{"^1.0.0 || ^3.0.0", "3.1.0", true},
		{"^1.0.0 || ^3.0.0", "2.0.0", false},
		{"latest", "1.0.0", false},
		{"https://github.com/CocoonIO/cocoon-xml-sugar.git", "1.0.0", false},
	}

	for _, tt := range tests {
		spec := MustParseSpec(tt.spec)
		if got := spec.Allows(MustParse(tt.version)); got != tt.expected {
			t.Errorf("Spec(%s).Allows(%s) = %v, want %v", tt.spec, tt.version, got, tt.expected)
		}
	}
}

func TestSpec_Checkable(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"*", true},
		{"1.0.0", true},
		{"^1.0.0", true},
		{"latest", false},
		{"file:./plugin", false},
		{"github:apache/cordova-ios", false},
	}

	for _, tt := range tests {
		if got := MustParseSpec(tt.spec).Checkable(); got != tt.want {
			t.Errorf("Checkable(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestSpecKind_String(t *testing.T) {
	if SpecGit.String() != "git" {
		t.Errorf("SpecGit.String() = %q", SpecGit.String())
	}
	if SpecKind(42).String() != "SpecKind(42)" {
		t.Errorf("SpecKind(42).String() = %q", SpecKind(42).String())
	}
}
