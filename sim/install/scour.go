// Package install contains the installation phases that drive vessels,
// ports and cargo holds through a project. Each phase validates its
// configuration up front, then runs as a single process on the engine.
package install

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

// ScourProtectionConfig collects everything the scour protection phase
// needs. Distances are km, masses tons, durations hours.
type ScourProtectionConfig struct {
	SiteDistance        float64 // port to site, km
	NumTurbines         int
	TurbineDistance     float64 // between adjacent turbines, km; 0 derives from rotor and spacing
	RotorDiameter       float64 // m, used only when TurbineDistance is 0
	TurbineSpacing      float64 // in rotor diameters, used only when TurbineDistance is 0
	TonsPerSubstructure float64 // rounded up to whole tons during setup
	PortSupply          float64 // tons on the quay; math.Inf(1) means unlimited
	LoadRocksTime       float64 // hours per loading operation
	DropRocksTime       float64 // hours per drop operation
	Vessel              sim.VesselSpec
}

// Outputs are the phase counters a results report is built from. They
// are raw tallies; rates and costs are derived downstream.
type Outputs struct {
	TurbinesInstalled int     `json:"turbines_installed"`
	TonsDelivered     float64 `json:"tons_delivered"`
	TonsLoaded        float64 `json:"tons_loaded"`
	PortWithdrawn     float64 `json:"port_withdrawn"`
	PortCalls         int     `json:"port_calls"`
	SiteTransits      int     `json:"site_transits"`
	TurbineMoves      int     `json:"turbine_moves"`
	ReturnTransits    int     `json:"return_transits"`
}

// ScourProtection is the single-vessel scour protection installation
// phase: load rock at port, sail to site, place one load per
// substructure while cargo lasts, shuttle back for more until every
// turbine is protected.
type ScourProtection struct {
	env    *sim.Environment
	cfg    ScourProtectionConfig
	port   *sim.Port
	vessel *sim.Vessel

	tonsPerSubstructure float64
	turbineDistance     float64

	remaining int
	outputs   Outputs
}

// NewScourProtection validates cfg, builds the port and vessel, and
// places the vessel at port. Start launches the installation process.
func NewScourProtection(env *sim.Environment, cfg ScourProtectionConfig, constraints sim.ConstraintEvaluator) (*ScourProtection, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	sp := &ScourProtection{
		env:                 env,
		cfg:                 cfg,
		port:                sim.NewPort(env, cfg.PortSupply),
		vessel:              sim.NewVessel(env, cfg.Vessel, constraints),
		tonsPerSubstructure: math.Ceil(cfg.TonsPerSubstructure),
		turbineDistance:     cfg.TurbineDistance,
		remaining:           cfg.NumTurbines,
	}
	if sp.turbineDistance <= 0 {
		sp.turbineDistance = cfg.RotorDiameter * cfg.TurbineSpacing / 1000
	}
	sp.vessel.SetLocation(sim.AtPort)
	return sp, nil
}

func validateConfig(cfg ScourProtectionConfig) error {
	switch {
	case cfg.SiteDistance <= 0:
		return fmt.Errorf("scour protection: site distance %.2fkm must be positive", cfg.SiteDistance)
	case cfg.NumTurbines <= 0:
		return fmt.Errorf("scour protection: turbine count %d must be positive", cfg.NumTurbines)
	case cfg.TonsPerSubstructure <= 0:
		return fmt.Errorf("scour protection: tons per substructure %.2f must be positive", cfg.TonsPerSubstructure)
	case cfg.LoadRocksTime <= 0:
		return fmt.Errorf("scour protection: load time %.2fh must be positive", cfg.LoadRocksTime)
	case cfg.DropRocksTime <= 0:
		return fmt.Errorf("scour protection: drop time %.2fh must be positive", cfg.DropRocksTime)
	case cfg.Vessel.TransitSpeed <= 0:
		return fmt.Errorf("scour protection: vessel %s transit speed must be positive", cfg.Vessel.Name)
	case cfg.Vessel.MaxCargo < math.Ceil(cfg.TonsPerSubstructure):
		return fmt.Errorf("scour protection: vessel %s cargo capacity %.1ft cannot carry one substructure's %.1ft",
			cfg.Vessel.Name, cfg.Vessel.MaxCargo, math.Ceil(cfg.TonsPerSubstructure))
	case !math.IsInf(cfg.PortSupply, 1) && cfg.PortSupply <= 0:
		return fmt.Errorf("scour protection: port supply %.1ft must be positive, or unlimited", cfg.PortSupply)
	}
	return nil
}

// Start launches the installation process. Call once, before
// Environment.Run.
func (sp *ScourProtection) Start() *sim.Process {
	return sp.env.StartProcess("Scour Protection Installation", sp.install)
}

// Vessel returns the installation vessel.
func (sp *ScourProtection) Vessel() *sim.Vessel { return sp.vessel }

// Port returns the supply port.
func (sp *ScourProtection) Port() *sim.Port { return sp.port }

// Outputs returns the phase counters accumulated so far. Final once the
// run completes.
func (sp *ScourProtection) Outputs() Outputs {
	out := sp.outputs
	out.PortWithdrawn = sp.port.Withdrawn()
	return out
}

// install is the vessel's work loop. The branch structure mirrors how
// crews cycle: load at port, sail out, place one load per substructure
// while cargo and remaining work allow, sail home when either runs out.
// After the last substructure the vessel always returns to port.
func (sp *ScourProtection) install(p *sim.Process) error {
	if err := sp.vessel.Mobilize(p); err != nil {
		return err
	}

	for sp.remaining > 0 {
		switch sp.vessel.Location() {
		case sim.AtPort:
			sp.outputs.PortCalls++
			amount := math.Min(sp.vessel.Storage().AvailableCapacity(), sp.port.Level())
			if amount <= 0 && sp.vessel.Storage().Level() < sp.tonsPerSubstructure {
				// Quay exhausted with too little on board to place even
				// one more load: the project is under-supplied.
				return &sim.InsufficientAmountError{
					Resource:  "port stockpile",
					Requested: sp.tonsPerSubstructure,
					Available: sp.port.Level(),
				}
			}
			if amount > 0 {
				if err := sp.loadMaterial(p, amount); err != nil {
					return err
				}
			}
			sp.vessel.SetLocation(sim.InTransit)
			if err := sp.vessel.Transit(p, sp.cfg.SiteDistance); err != nil {
				return err
			}
			sp.vessel.SetLocation(sim.AtSite)
			sp.outputs.SiteTransits++

		case sim.AtSite:
			if sp.vessel.Storage().Level() >= sp.tonsPerSubstructure {
				if err := sp.dropMaterial(p); err != nil {
					return err
				}
				sp.remaining--
				sp.outputs.TurbinesInstalled++

				if sp.vessel.Storage().Level() >= sp.tonsPerSubstructure && sp.remaining > 0 {
					if err := sp.vessel.Transit(p, sp.turbineDistance); err != nil {
						return err
					}
					sp.outputs.TurbineMoves++
				} else {
					sp.vessel.SetLocation(sim.InTransit)
					if err := sp.vessel.Transit(p, sp.cfg.SiteDistance); err != nil {
						return err
					}
					sp.vessel.SetLocation(sim.AtPort)
					sp.outputs.ReturnTransits++
				}
			} else {
				sp.vessel.SetLocation(sim.InTransit)
				if err := sp.vessel.Transit(p, sp.cfg.SiteDistance); err != nil {
					return err
				}
				sp.vessel.SetLocation(sim.AtPort)
				sp.outputs.ReturnTransits++
			}

		default:
			return &sim.VesselStateError{Vessel: sp.vessel.Name(), State: sp.vessel.Location()}
		}
	}

	logrus.Infof("Scour protection installation complete: %d turbines in %.1fh",
		sp.cfg.NumTurbines, sp.env.Now())
	return nil
}

// loadMaterial withdraws amount tons from the quay into the hold, then
// books the loading task. The explicit overweight check pins the error
// to the vessel instead of surfacing as a generic container fault.
func (sp *ScourProtection) loadMaterial(p *sim.Process, amount float64) error {
	hold := sp.vessel.Storage()
	if hold.Level()+amount > hold.Capacity() {
		return &sim.CapacityExceededError{
			Resource:  hold.Name(),
			Requested: amount,
			Capacity:  hold.Capacity(),
			Level:     hold.Level(),
		}
	}
	if err := sp.port.Withdraw(p, amount); err != nil {
		return err
	}
	if err := hold.Put(p, amount); err != nil {
		return err
	}
	if err := sp.vessel.Task(p, "Load SP Material", sp.cfg.LoadRocksTime, sim.OpLoad); err != nil {
		return err
	}
	sp.outputs.TonsLoaded += amount
	return nil
}

// dropMaterial takes one substructure's worth from the hold and books
// the drop task. The shortage check mirrors the loop guard; failing it
// means the orchestration itself is broken.
func (sp *ScourProtection) dropMaterial(p *sim.Process) error {
	hold := sp.vessel.Storage()
	if hold.Level() < sp.tonsPerSubstructure {
		return &sim.InsufficientAmountError{
			Resource:  hold.Name(),
			Requested: sp.tonsPerSubstructure,
			Available: hold.Level(),
		}
	}
	if err := hold.Get(p, sp.tonsPerSubstructure); err != nil {
		return err
	}
	if err := sp.vessel.Task(p, "Drop SP Material", sp.cfg.DropRocksTime, sim.OpDrop); err != nil {
		return err
	}
	sp.outputs.TonsDelivered += sp.tonsPerSubstructure
	return nil
}
