package tmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesSetByType(t *testing.T) {
	p := NewProperties()

	assert.Nil(t, p.set("i", PropInt, "-4"))
	assert.Nil(t, p.set("f", PropFloat, "0.25"))
	assert.Nil(t, p.set("b", PropBool, "false"))
	assert.Nil(t, p.set("c", PropColor, "#ff102030"))
	assert.Nil(t, p.set("file", PropFile, "../x.png"))
	assert.Nil(t, p.set("s", "", "hello"))
	assert.Nil(t, p.set("obj", "object", "12"))

	i, ok := p.Int("i")
	assert.True(t, ok)
	assert.Equal(t, -4, i)

	f, _ := p.Float("f")
	assert.Equal(t, 0.25, f)

	b, ok := p.Bool("b")
	assert.True(t, ok)
	assert.False(t, b)

	c, ok := p.Colour("c")
	assert.True(t, ok)
	assert.Equal(t, Colour{Alpha: 0xff, Red: 0x10, Green: 0x20, Blue: 0x30}, c)
	assert.Equal(t, "#ff102030", c.String())

	file, _ := p.String("file")
	assert.Equal(t, "../x.png", file)
	s, _ := p.String("s")
	assert.Equal(t, "hello", s)
	obj, _ := p.String("obj")
	assert.Equal(t, "12", obj)

	assert.Equal(t, 7, p.Len())
}

func TestPropertiesSetInvalid(t *testing.T) {
	p := NewProperties()

	assert.ErrorIs(t, p.set("i", PropInt, "1.5"), ErrMalformedAttributes)
	assert.ErrorIs(t, p.set("f", PropFloat, "x"), ErrMalformedAttributes)
	assert.ErrorIs(t, p.set("b", PropBool, "yes"), ErrMalformedAttributes)
	assert.ErrorIs(t, p.set("c", PropColor, "#12"), ErrMalformedAttributes)
	assert.Equal(t, 0, p.Len())
}

func TestPropertiesTypeChange(t *testing.T) {
	p := NewProperties()

	p.SetInt("k", 1)
	p.SetString("k", "one")

	_, ok := p.Int("k")
	assert.False(t, ok)
	v, _ := p.String("k")
	assert.Equal(t, "one", v)
	assert.Equal(t, 1, p.Len())
}

func TestPropertiesMerge(t *testing.T) {
	a := NewProperties()
	a.SetInt("x", 1)
	a.SetBool("y", true)

	b := NewProperties()
	b.SetFloat("x", 2.5)
	b.SetString("z", "z")

	a.Merge(b)

	_, ok := a.Int("x")
	assert.False(t, ok)
	x, _ := a.Float("x")
	assert.Equal(t, 2.5, x)
	y, _ := a.Bool("y")
	assert.True(t, y)
	assert.Equal(t, 3, a.Len())
}

func TestParseProperties(t *testing.T) {
	p, _ := startAt(t, `<properties>
  <property name="a" value="1" type="int"/>
  <property name="b">line one
line two</property>
  <property name="c"/>
</properties><after/>`, "properties")

	props := NewProperties()
	err := p.parseProperties(props)

	assert.Nil(t, err)
	a, _ := props.Int("a")
	assert.Equal(t, 1, a)
	b, _ := props.String("b")
	assert.Equal(t, "line one\nline two", b)
	c, ok := props.String("c")
	assert.True(t, ok)
	assert.Equal(t, "", c)
}

func TestParsePropertiesNoName(t *testing.T) {
	p, _ := startAt(t, `<properties><property value="1"/></properties>`, "properties")

	err := p.parseProperties(NewProperties())

	assert.ErrorIs(t, err, ErrMalformedAttributes)
}

func TestAsColour(t *testing.T) {
	c, ok := asColour("#102030")
	assert.True(t, ok)
	assert.Equal(t, Colour{Alpha: 0xff, Red: 0x10, Green: 0x20, Blue: 0x30}, c)

	c, ok = asColour("80102030")
	assert.True(t, ok)
	assert.Equal(t, Colour{Alpha: 0x80, Red: 0x10, Green: 0x20, Blue: 0x30}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#1020304050"} {
		_, ok := asColour(bad)
		assert.False(t, ok, bad)
	}
}
