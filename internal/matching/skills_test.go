package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSkillSetNormalizes(t *testing.T) {
	set := NewSkillSet([]string{" Python ", "PYTHON", "sql", "", "  "})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("python"))
	assert.True(t, set.Contains("SQL "))
	assert.False(t, set.Contains("go"))
}

func TestIntersectCount(t *testing.T) {
	a := NewSkillSet([]string{"Python", "SQL", "Docker"})
	b := NewSkillSet([]string{"python", "kubernetes"})

	assert.Equal(t, 1, a.IntersectCount(b))
	assert.Equal(t, 1, b.IntersectCount(a))
	assert.Equal(t, 0, a.IntersectCount(NewSkillSet(nil)))
}
