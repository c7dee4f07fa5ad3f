package model

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestNewParameters(t *testing.T) {
	g := NewWithT(t)

	parameters := NewParameters()

	for term := range MaxTerms {
		g.Expect(parameters.CreditCaps[term]).To(Equal(DefaultCreditCap))
		for day := range DaysPerWeek {
			g.Expect(parameters.BlockedTime(term, day)).To(BeZero())
		}
	}
	g.Expect(parameters.TotalCreditTarget).To(BeZero())
	g.Expect(parameters.Priority("ANY")).To(Equal(DefaultPriority))
	g.Expect(parameters.SelectedCourses).To(BeEmpty())
	g.Expect(parameters.Eligible("ANY")).To(BeTrue(), "the default priority is enough to be scheduled")
}

func TestParametersSetters(t *testing.T) {
	g := NewWithT(t)
	parameters := NewParameters()

	g.Expect(parameters.SetCreditCap(3, 12)).To(Succeed())
	g.Expect(parameters.CreditCaps[3]).To(Equal(12))
	g.Expect(parameters.SetCreditCap(MaxTerms, 12)).NotTo(Succeed())
	g.Expect(parameters.SetCreditCap(-1, 12)).NotTo(Succeed())

	g.Expect(parameters.SetPriority("A", 7)).To(Succeed())
	g.Expect(parameters.Priority("A")).To(Equal(7))
	g.Expect(parameters.SetPriority("A", 11)).NotTo(Succeed())
	g.Expect(parameters.SetPriority("A", -1)).NotTo(Succeed())
	g.Expect(parameters.Priority("A")).To(Equal(7))

	parameters.AddCourse("B")
	g.Expect(parameters.Priority("B")).To(Equal(MaxPriority))
	parameters.RemoveCourse("B")
	g.Expect(parameters.Priority("B")).To(Equal(MinPriority))
	g.Expect(parameters.Eligible("B")).To(BeFalse())

	parameters.SetSelectedCourses([]string{"B", "C"})
	g.Expect(parameters.Eligible("B")).To(BeTrue(), "selection overrides a low priority")
	g.Expect(parameters.Selected("C")).To(BeTrue())
	parameters.SetSelectedCourses([]string{"C"})
	g.Expect(parameters.Selected("B")).To(BeFalse(), "a new selection replaces the previous one")
}

func TestAddBlockedTime(t *testing.T) {
	g := NewWithT(t)
	parameters := NewParameters()

	g.Expect(parameters.AddBlockedTime(2, tuesday, 0b0011)).To(Succeed())
	g.Expect(parameters.AddBlockedTime(2, tuesday, 0b0110)).To(Succeed())
	g.Expect(parameters.BlockedTime(2, tuesday)).To(Equal(SlotMask(0b0111)))

	g.Expect(parameters.AddBlockedTime(MaxTerms, tuesday, 1)).NotTo(Succeed())
	g.Expect(parameters.AddBlockedTime(0, DaysPerWeek, 1)).NotTo(Succeed())
	g.Expect(parameters.AddBlockedTime(0, monday, 1<<SlotsPerDay)).NotTo(Succeed())
	g.Expect(parameters.BlockedTime(MaxTerms, monday)).To(BeZero())
}

func TestParametersClone(t *testing.T) {
	g := NewWithT(t)
	original := NewParameters()
	original.SetSelectedCourses([]string{"A"})
	g.Expect(original.SetPriority("A", 9)).To(Succeed())

	clone := original.Clone()
	clone.SetSelectedCourses([]string{"B"})
	g.Expect(clone.SetPriority("A", 1)).To(Succeed())
	g.Expect(clone.SetCreditCap(0, 1)).To(Succeed())

	g.Expect(original.Selected("A")).To(BeTrue())
	g.Expect(original.Priority("A")).To(Equal(9))
	g.Expect(original.CreditCaps[0]).To(Equal(DefaultCreditCap))
}

func TestParametersFromYaml(t *testing.T) {
	g := NewWithT(t)

	parameters, err := ParametersFromYaml(parametersTestDirectory + "sample.yaml")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(parameters.SelectedCourses).To(HaveLen(2))
	g.Expect(parameters.Selected("CS101")).To(BeTrue())
	g.Expect(parameters.Selected("CS102")).To(BeTrue())
	g.Expect(parameters.Priority("MATH101")).To(Equal(8))
	g.Expect(parameters.Priority("CS101")).To(Equal(DefaultPriority))
	g.Expect(parameters.CreditCaps[0]).To(Equal(18))
	g.Expect(parameters.CreditCaps[1]).To(Equal(20))
	g.Expect(parameters.CreditCaps[2]).To(Equal(DefaultCreditCap))
	g.Expect(parameters.TotalCreditTarget).To(Equal(60))
	g.Expect(parameters.BlockedTime(0, 4)).To(Equal(SlotMask(0b1_1100_0000_0001)))
}

func TestParametersFromYamlErrors(t *testing.T) {
	g := NewWithT(t)

	for _, document := range []string{
		"selected: {a: b}",
		"priorities: {A: 11}",
		"priorities: {A: -2}",
		"credit_caps: {8: 10}",
		"credit_caps: {-1: 10}",
		"total_credit_target: -5",
		"blocked: [{term: 0, day: 7, slots: [1]}]",
		"blocked: [{term: 0, day: 1, slots: [13]}]",
		"blocked: [{term: 0, day: 1}]",
	} {
		_, err := ParametersFromYamlBytes([]byte(document))
		g.Expect(err).To(HaveOccurred(), document)
	}
}
