package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/scene"
	"github.com/san-kum/periodix/internal/session"
)

type fakeSurface struct {
	mu       sync.Mutex
	w, h     int
	checkErr error
	renders  int
	errors   []string
	released int
	last     *scene.Node
}

func (f *fakeSurface) Check() error { return f.checkErr }
func (f *fakeSurface) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w, f.h
}
func (f *fakeSurface) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.w, f.h = w, h
}
func (f *fakeSurface) Render(root *scene.Node, _ *scene.View) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders++
	f.last = root
	return nil
}
func (f *fakeSurface) ShowError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, msg)
}
func (f *fakeSurface) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
}
func (f *fakeSurface) renderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders
}

var _ = Describe("Session", func() {
	var (
		catalog *chem.Catalog
		builder *build.Builder
		surface *fakeSurface
		reg     *prometheus.Registry
		metrics *session.Metrics
		s       *session.Session
		logger  *slog.Logger
	)

	element := func(sym string) chem.Element {
		e, err := catalog.BySymbol(sym)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		catalog = chem.MustLoad()
		tables, err := modeldata.Load()
		Expect(err).NotTo(HaveOccurred())
		resolver, err := modeldata.NewResolver(tables, 16)
		Expect(err).NotTo(HaveOccurred())
		builder = build.New(resolver, build.DefaultOptions())

		surface = &fakeSurface{w: 80, h: 40}
		reg = prometheus.NewRegistry()
		metrics, err = session.NewMetrics(reg)
		Expect(err).NotTo(HaveOccurred())
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))

		s = session.New(session.Config{
			Builder: builder,
			Surface: surface,
			Logger:  logger,
			Metrics: metrics,
			Rotate:  true,
		})
	})

	Describe("lifecycle", func() {
		It("starts uninitialized and displays after the first show", func() {
			Expect(s.State()).To(Equal(session.Uninitialized))
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			Expect(s.State()).To(Equal(session.Displaying))
			Expect(surface.renderCount()).To(Equal(1))
			Expect(s.ID()).NotTo(BeEmpty())
		})

		It("stays displaying across element and mode changes", func() {
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			Expect(s.Show(element("C"), build.ModeCrystal)).To(Succeed())
			Expect(s.State()).To(Equal(session.Displaying))
			Expect(s.Model().Title).To(Equal("Diamond (Carbon) Crystal"))
			expected := `
# HELP periodix_session_builds_total Scenes built, by visualization mode.
# TYPE periodix_session_builds_total counter
periodix_session_builds_total{mode="atom"} 1
periodix_session_builds_total{mode="crystal"} 1
`
			Expect(testutil.GatherAndCompare(reg, strings.NewReader(expected), "periodix_session_builds_total")).To(Succeed())
		})

		It("falls back to the atom for an unknown mode", func() {
			Expect(s.Show(element("Fe"), build.ParseMode("hologram"))).To(Succeed())
			Expect(s.Model().Mode).To(Equal(build.ModeAtom))
		})

		It("can be shown again after dispose", func() {
			Expect(s.Show(element("O"), build.ModeMolecule)).To(Succeed())
			s.Dispose()
			Expect(s.State()).To(Equal(session.Disposed))
			Expect(surface.released).To(Equal(1))
			Expect(s.Live().Total()).To(BeZero())

			Expect(s.Show(element("O"), build.ModeMolecule)).To(Succeed())
			Expect(s.State()).To(Equal(session.Displaying))
		})

		It("treats a second dispose as a no-op", func() {
			Expect(s.Show(element("O"), build.ModeMolecule)).To(Succeed())
			s.Dispose()
			s.Dispose()
			Expect(surface.released).To(Equal(1))
		})
	})

	Describe("resources", func() {
		It("releases the previous scene before building the next", func() {
			Expect(s.Show(element("C"), build.ModeCrystal)).To(Succeed())
			before := s.Live()
			Expect(before.Geometries).To(BeNumerically(">", 0))

			s.Dispose()
			Expect(s.Show(element("C"), build.ModeCrystal)).To(Succeed())
			Expect(s.Live()).To(Equal(before))
		})

		It("does not accumulate across repeated shows", func() {
			Expect(s.Show(element("H"), build.ModeMolecule)).To(Succeed())
			first := s.Live()
			for i := 0; i < 5; i++ {
				Expect(s.Show(element("Au"), build.ModeAtom)).To(Succeed())
				Expect(s.Show(element("H"), build.ModeMolecule)).To(Succeed())
			}
			Expect(s.Live()).To(Equal(first))
			Expect(first.Textures).To(Equal(3))
		})

		It("publishes the live resource gauge", func() {
			Expect(s.Show(element("H"), build.ModeMolecule)).To(Succeed())
			n, err := testutil.GatherAndCount(reg, "periodix_session_live_resources")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
		})
	})

	Describe("environment errors", func() {
		It("reports a missing surface without initialising", func() {
			s = session.New(session.Config{Builder: builder, Logger: logger, Metrics: metrics})
			err := s.Show(element("Na"), build.ModeAtom)
			Expect(errors.Is(err, session.ErrEnvironmentUnavailable)).To(BeTrue())
			Expect(s.State()).To(Equal(session.Uninitialized))
		})

		It("shows a textual error and recovers once the surface works", func() {
			surface.checkErr = errors.New("no braille support")
			err := s.Show(element("Na"), build.ModeAtom)
			Expect(err).To(MatchError(session.ErrEnvironmentUnavailable))

			var envErr *session.EnvironmentError
			Expect(errors.As(err, &envErr)).To(BeTrue())
			Expect(surface.errors).To(HaveLen(1))
			Expect(s.State()).To(Equal(session.Uninitialized))

			surface.checkErr = nil
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			Expect(s.State()).To(Equal(session.Displaying))
		})
	})

	Describe("layout", func() {
		It("parks a show until the surface has a size", func() {
			surface.w, surface.h = 0, 0
			Expect(s.Show(element("Cu"), build.ModeCrystal)).To(Succeed())
			Expect(s.Pending()).To(BeTrue())
			Expect(s.State()).To(Equal(session.Uninitialized))
			Expect(surface.renderCount()).To(BeZero())

			Expect(s.OnViewportResize(0, 10)).To(Succeed())
			Expect(s.Pending()).To(BeTrue())

			Expect(s.OnViewportResize(100, 50)).To(Succeed())
			Expect(s.Pending()).To(BeFalse())
			Expect(s.State()).To(Equal(session.Displaying))
			Expect(s.Model().Title).To(Equal("Copper (FCC) Crystal"))
		})

		It("repaints on resize while displaying", func() {
			Expect(s.Show(element("Cu"), build.ModeCrystal)).To(Succeed())
			Expect(s.OnViewportResize(120, 60)).To(Succeed())
			Expect(surface.renderCount()).To(Equal(2))
		})
	})

	Describe("animation", func() {
		It("rejects stale tokens after a new show", func() {
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			token := s.Token()
			Expect(s.Frame(token, 0.016)).To(BeTrue())

			Expect(s.Show(element("K"), build.ModeAtom)).To(Succeed())
			Expect(s.Frame(token, 0.016)).To(BeFalse())
			Expect(s.Frame(s.Token(), 0.016)).To(BeTrue())
		})

		It("never ticks on torn-down state", func() {
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			token := s.Token()
			s.Dispose()
			Expect(func() { s.Frame(token, 0.016) }).NotTo(Panic())
			Expect(s.Frame(s.Token(), 0.016)).To(BeFalse())
		})

		It("rotates the model only while rotation is on", func() {
			Expect(s.Show(element("O"), build.ModeMolecule)).To(Succeed())
			root := s.Model().Root
			Expect(s.Frame(s.Token(), 1)).To(BeTrue())
			Expect(root.Rotation).NotTo(Equal(scene.Identity()))

			Expect(s.ToggleRotation()).To(BeFalse())
			rot := root.Rotation
			Expect(s.Frame(s.Token(), 1)).To(BeTrue())
			Expect(root.Rotation).To(Equal(rot))
		})

		It("stops Run when the chain is cancelled", func() {
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			done := make(chan error, 1)
			go func() { done <- s.Run(context.Background(), 100) }()

			Eventually(surface.renderCount).Should(BeNumerically(">", 2))
			s.Dispose()
			Eventually(done, time.Second).Should(Receive(BeNil()))
		})

		It("stops Run when the context ends", func() {
			Expect(s.Show(element("Na"), build.ModeAtom)).To(Succeed())
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- s.Run(ctx, 100) }()
			cancel()
			Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
		})
	})
})

