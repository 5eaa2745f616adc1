package constants

const KBolzmann float64 = 1.380649e-23
const ElectronCharge = 1.602176634e-19                   // C
const ElectronMass float64 = 9.1093837139e-31            // [kg]
const FreeSpacePermittivityE0 float64 = 8.8541878188e-12 // [m^-3 kg^{-1} s^4 A^2]
const BohrRadius float64 = 5.29177210903e-11             // [m]
const ReducedPlanck float64 = 1.054571817e-34            // [J s]
const Rydberg float64 = 13.605693122994                  // [eV]
const AtomicMassUnit float64 = 1.66053906660e-27         // [kg]
const Quantile95 = 1.96
