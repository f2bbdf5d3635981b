package mapper_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/mapper"
)

var _ = Describe("TruncateRunes", func() {
	It("keeps short text as is", func() {
		Expect(mapper.TruncateRunes("hello", 10)).To(Equal("hello"))
	})

	It("cuts at exactly n characters", func() {
		Expect(mapper.TruncateRunes("abcdef", 3)).To(Equal("abc"))
	})

	It("counts characters rather than bytes", func() {
		s := strings.Repeat("é", 5)
		Expect(mapper.TruncateRunes(s, 3)).To(Equal("ééé"))
	})
})
