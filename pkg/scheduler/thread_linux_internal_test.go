//go:build linux

package scheduler

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("truncateThreadName",
	func(name, expected string) {
		Expect(truncateThreadName(name)).To(Equal(expected))
	},
	Entry("short name", "worker", "worker"),
	Entry("exactly at the limit", "fifteen-chars-x", "fifteen-chars-x"),
	Entry("long ascii name", "a-very-long-thread-name", "a-very-long-thr"),
	Entry("multi-byte rune across the limit", "ééééééééé", "ééééééé"),
	Entry("three-byte runes", "日本語のスレッド名", "日本語のス"),
)
