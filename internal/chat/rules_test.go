package chat

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Rules", func() {
	ginkgo.Describe("extractTaskUpdates", func() {
		ginkgo.It("parses 'task #5 done' into a DONE proposal", func() {
			updates := extractTaskUpdates("Task #5 is done")

			gomega.Expect(updates).To(gomega.HaveLen(1))
			gomega.Expect(updates[0].taskID).To(gomega.Equal(int64(5)))
			gomega.Expect(updates[0].status).To(gomega.Equal("DONE"))
		})

		ginkgo.It("tolerates spacing around the hash", func() {
			updates := extractTaskUpdates("task # 12 started")

			gomega.Expect(updates).To(gomega.HaveLen(1))
			gomega.Expect(updates[0].taskID).To(gomega.Equal(int64(12)))
			gomega.Expect(updates[0].status).To(gomega.Equal("IN_PROGRESS"))
		})

		ginkgo.It("treats a blocked report as IN_PROGRESS", func() {
			updates := extractTaskUpdates("task 3 is blocked on review")

			gomega.Expect(updates).To(gomega.HaveLen(1))
			gomega.Expect(updates[0].status).To(gomega.Equal("IN_PROGRESS"))
		})

		ginkgo.It("emits one proposal per matching rule, in rule order", func() {
			updates := extractTaskUpdates("started task 8, now done")

			gomega.Expect(updates).To(gomega.HaveLen(2))
			gomega.Expect(updates[0].status).To(gomega.Equal("DONE"))
			gomega.Expect(updates[1].status).To(gomega.Equal("IN_PROGRESS"))
		})

		ginkgo.It("proposes nothing without a task reference", func() {
			gomega.Expect(extractTaskUpdates("everything is done")).To(gomega.BeEmpty())
		})

		ginkgo.It("proposes nothing without a trigger keyword", func() {
			gomega.Expect(extractTaskUpdates("looking at task 5 today")).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("generateReply", func() {
		ginkgo.It("prefers the blocked reply when several keywords appear", func() {
			reply := generateReply("task 5 is done but task 6 is blocked")

			gomega.Expect(reply).To(gomega.ContainSubstring("blocked"))
		})

		ginkgo.It("acknowledges completion", func() {
			reply := generateReply("finally completed the migration")

			gomega.Expect(reply).To(gomega.ContainSubstring("DONE"))
		})

		ginkgo.It("offers to start a task", func() {
			reply := generateReply("starting on the login page")

			gomega.Expect(reply).To(gomega.ContainSubstring("IN_PROGRESS"))
		})

		ginkgo.It("falls back to usage hints", func() {
			reply := generateReply("good morning")

			gomega.Expect(reply).To(gomega.ContainSubstring("'Task X is done'"))
		})
	})
})
