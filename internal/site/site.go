// Package site assembles the foundation page from hxpanel components.
package site

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pthm/hxpanel"
	hxpanelecho "github.com/pthm/hxpanel/adapters/echo"
	"github.com/pthm/hxpanel/internal/config"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/widget/carousel"
)

// Site holds every component on the page.
type Site struct {
	Content *content.Content

	Nav        *NavMenu
	Header     *Header
	FAQ        *FAQ
	Events     *Events
	Donation   *Form
	Volunteer  *Form
	Contact    *Form
	Newsletter *Form
	Rotator    *Rotator
}

// Links is the main navigation.
var Links = []NavLink{
	{Label: "About", Href: "#about"},
	{Label: "Events", Href: "#events"},
	{Label: "Volunteer", Href: "#volunteer"},
	{Label: "Donate", Href: "#donate"},
	{Label: "FAQ", Href: "#faq"},
	{Label: "Contact", Href: "#contact"},
}

// New builds the components from configuration and content. rotatorOpts
// reach the featured carousel; production passes none.
func New(cfg *config.Config, c *content.Content, rotatorOpts ...carousel.Option) (*Site, error) {
	rot, err := NewRotator(c.Featured, cfg.FeaturedInterval, rotatorOpts...)
	if err != nil {
		return nil, err
	}

	nav := NewNavMenu(Links)
	return &Site{
		Content:    c,
		Nav:        nav,
		Header:     NewHeader(c.Site, nav),
		FAQ:        NewFAQ(c.FAQ, cfg.Mode()),
		Events:     NewEvents(c.Events, cfg.CarouselInterval),
		Donation:   NewDonationForm(c.Amounts),
		Volunteer:  NewVolunteerForm(c.States, c.Interests),
		Contact:    NewContactForm(),
		Newsletter: NewNewsletter(),
		Rotator:    rot,
	}, nil
}

// Register adds every component to reg.
func (s *Site) Register(reg *hxpanel.Registry) {
	reg.Add(
		s.Nav,
		s.Header,
		s.FAQ,
		s.Events,
		s.Donation,
		s.Volunteer,
		s.Contact,
		s.Newsletter,
	)
}

// Routes mounts the page, the featured stream and a health check on e.
// Component routes are mounted separately, by hxpanelecho.Mount.
func (s *Site) Routes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return hxpanelecho.Render(c, s.Page())
	})
	e.GET(FeaturedPath, echo.WrapHandler(s.Rotator))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}
