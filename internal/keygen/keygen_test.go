package keygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCatalog struct {
	byValue map[string]string
	byKey   map[string]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{byValue: map[string]string{}, byKey: map[string]string{}}
}

func (f *fakeCatalog) put(key, value string) {
	f.byKey[key] = value
	f.byValue[value] = key
}

func (f *fakeCatalog) LookupByValue(v string) (string, bool) {
	k, ok := f.byValue[v]
	return k, ok
}

func (f *fakeCatalog) LookupByKey(k string) (string, bool) {
	v, ok := f.byKey[k]
	return v, ok
}

func TestAssignReusesExistingKeyForKnownText(t *testing.T) {
	cat := newFakeCatalog()
	cat.put("common.quXiao", "取消")

	s := New(cat, "")
	a := s.Assign("src/a.ts", "取消", "quXiao")

	assert.Equal(t, "common.quXiao", a.Key)
	assert.False(t, a.NeedWrite)
}

func TestAssignDerivesSuggestionFromDirAndFile(t *testing.T) {
	cat := newFakeCatalog()
	s := New(cat, "")

	a := s.Assign("src/views/login/submit.ts", "提交", "tiJiao")

	assert.Equal(t, "login.submit.tiJiao", a.Key)
	assert.True(t, a.NeedWrite)
}

func TestAssignCollapsesSameDirAndFileBase(t *testing.T) {
	cat := newFakeCatalog()
	s := New(cat, "")

	a := s.Assign("src/common/common.ts", "提交", "tiJiao")

	assert.Equal(t, "common.tiJiao", a.Key)
}

func TestAssignUsesPagesPathSpecialCase(t *testing.T) {
	cat := newFakeCatalog()
	s := New(cat, "")

	a := s.Assign("src/pages/app/user/queRen.ts", "确认", "queRen")

	assert.Equal(t, "user.queRen.queRen", a.Key)
}

func TestAssignWithExplicitPrefix(t *testing.T) {
	cat := newFakeCatalog()
	s := New(cat, "custom")

	a := s.Assign("src/a.ts", "提交", "tiJiao")

	assert.Equal(t, "custom.tiJiao", a.Key)
}

func TestAssignCollisionAddsSuffix(t *testing.T) {
	cat := newFakeCatalog()
	cat.put("pages.user.queRen", "确认删除")

	s := New(cat, "pages.user")
	a := s.Assign("src/pages/app/user/queRen.ts", "确认", "queRen")

	assert.Equal(t, "pages.user.queRen2", a.Key)
	assert.True(t, a.NeedWrite)

	existing, ok := cat.LookupByKey("pages.user.queRen")
	assert.True(t, ok)
	assert.Equal(t, "确认删除", existing)
}

func TestAssignMemoizesRepeatedTextWithinFile(t *testing.T) {
	cat := newFakeCatalog()
	s := New(cat, "")

	first := s.Assign("src/a.ts", "提交", "tiJiao")
	second := s.Assign("src/a.ts", "提交", "somethingElse")

	assert.Equal(t, first.Key, second.Key)
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "tiJiao", CamelCase("ti jiao"))
	assert.Equal(t, "tiJiao", CamelCase("ti_jiao"))
	assert.Equal(t, "tiJiao", CamelCase("ti-jiao"))
	assert.Equal(t, "jiao", CamelCase("jiao"))
	assert.Equal(t, "", CamelCase(""))
}
