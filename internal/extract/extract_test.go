package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportedClass(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "extends clause",
			text:   "export class Foo extends Bar {",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "after imports",
			text:   "import { View } from \"@next2d/framework\";\n\nexport class Home extends View\n{\n}\n",
			want:   "Home",
			wantOK: true,
		},
		{
			name:   "first match only",
			text:   "export class First {}\nexport class Second {}\n",
			want:   "First",
			wantOK: true,
		},
		{
			name:   "crlf line endings",
			text:   "// model\r\nexport class Profile\r\n{\r\n}\r\n",
			want:   "Profile",
			wantOK: true,
		},
		{
			name:   "brace kept verbatim",
			text:   "export class Tight{",
			want:   "Tight{",
			wantOK: true,
		},
		{
			name:   "indented declaration",
			text:   "    export class Nested {}",
			want:   "Nested",
			wantOK: true,
		},
		{
			name:   "line comment still matches",
			text:   "// export class Foo\nexport class Bar {}",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "doc comment line still matches",
			text:   "/**\n * export class Foo {\n */\nexport class Bar {}",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "block comment still matches",
			text:   "/* export class Foo */",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "no exported class",
			text:   "class Hidden {}\nexport const x = 1;\nexport default class {}\n",
			wantOK: false,
		},
		{
			name:   "abstract class not matched",
			text:   "export abstract class Base {}",
			wantOK: false,
		},
		{
			name:   "marker without identifier",
			text:   "export class \nexport class Later {}",
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExportedClass(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
