package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_Lines(t *testing.T) {
	tests := []struct {
		name       string
		entry      Entry
		wantImport string
		wantTuple  string
	}{
		{
			name:       "view",
			entry:      NewEntry(RoleView, "Home", "src/view/Home.ts"),
			wantImport: `import { Home } from "@/view/Home";`,
			wantTuple:  `["Home", Home]`,
		},
		{
			name:       "nested view",
			entry:      NewEntry(RoleView, "TopView", "src/view/top/TopView.ts"),
			wantImport: `import { TopView } from "@/view/top/TopView";`,
			wantTuple:  `["TopView", TopView]`,
		},
		{
			name:       "nested model",
			entry:      NewEntry(RoleModel, "Profile", "src/model/user/Profile.ts"),
			wantImport: `import { Profile as user_Profile } from "@/model/user/Profile";`,
			wantTuple:  `["user.Profile", user_Profile]`,
		},
		{
			name:       "top level model",
			entry:      NewEntry(RoleModel, "Api", "src/model/Api.ts"),
			wantImport: `import { Api as Api } from "@/model/Api";`,
			wantTuple:  `["Api", Api]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantImport, tt.entry.ImportLine())
			assert.Equal(t, tt.wantTuple, tt.entry.TupleLine())
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		rel      string
		wantRole Role
		wantOK   bool
	}{
		{rel: "src/view/Home.ts", wantRole: RoleView, wantOK: true},
		{rel: "src/model/user/Profile.ts", wantRole: RoleModel, wantOK: true},
		{rel: "src/view/src/model/Odd.ts", wantRole: RoleView, wantOK: true},
		{rel: "src/config/Config.ts", wantOK: false},
		{rel: "src/index.ts", wantOK: false},
		{rel: "src/viewer/Home.ts", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			role, ok := Classify(tt.rel)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestRegistry_LookupLastWins(t *testing.T) {
	r := New()
	r.Register(Entry{Role: RoleModel, Name: "A", Key: "user.A", Alias: "user_A", Path: "src/model/user/A.ts"})
	r.Register(Entry{Role: RoleView, Name: "Home", Key: "Home", Alias: "Home", Path: "src/view/Home.ts"})
	r.Register(Entry{Role: RoleView, Name: "Home", Key: "Home", Alias: "Home", Path: "src/view/other/Home.ts"})

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, 2, r.CountByRole(RoleView))
	assert.Equal(t, 1, r.CountByRole(RoleModel))

	got, ok := r.Lookup("Home")
	assert.True(t, ok)
	assert.Equal(t, "src/view/other/Home.ts", got.Path)

	assert.Equal(t, []string{"Home"}, r.Collisions())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	r := New()
	r.Register(NewEntry(RoleModel, "Profile", "src/model/user/Profile.ts"))

	byKey, ok := r.Resolve("user.Profile")
	assert.True(t, ok)
	assert.Equal(t, "Profile", byKey.Name)

	byName, ok := r.Resolve("Profile")
	assert.True(t, ok)
	assert.Equal(t, "user.Profile", byName.Key)

	_, ok = r.Resolve("Nope")
	assert.False(t, ok)
}

func TestRegistry_Empty(t *testing.T) {
	r := New()
	assert.Empty(t, r.Imports())
	assert.Empty(t, r.Tuples())
	assert.Empty(t, r.Entries())
	assert.Empty(t, r.Collisions())
}
